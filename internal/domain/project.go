package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxProjectNameLength        = 100
	maxProjectDescriptionLength = 1000
)

// Project groups boards. Deleting a project removes its boards.
type Project struct {
	eventQueue

	id          string
	name        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
	deleted     bool

	opts options
}

func validateProject(name, description string) error {
	if err := validateName("project", name, maxProjectNameLength); err != nil {
		return err
	}
	if utf8.RuneCountInString(description) > maxProjectDescriptionLength {
		return validationf("project description cannot exceed %d characters", maxProjectDescriptionLength)
	}
	return nil
}

// CreateProject returns a new project.
func CreateProject(name, description string, opts ...Option) (*Project, error) {
	if err := validateProject(name, description); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	now := o.clock()
	p := &Project{
		id:          o.newID(),
		name:        name,
		description: description,
		createdAt:   now,
		updatedAt:   now,
		opts:        o,
	}
	p.record(ProjectCreated{EventMeta: EventMeta{Aggregate: p.id, At: now}, Name: name})
	return p, nil
}

func (p *Project) ID() string           { return p.id }
func (p *Project) Name() string         { return p.name }
func (p *Project) Description() string  { return p.description }
func (p *Project) CreatedAt() time.Time { return p.createdAt }
func (p *Project) UpdatedAt() time.Time { return p.updatedAt }
func (p *Project) Deleted() bool        { return p.deleted }

// Update replaces the project's name and description.
func (p *Project) Update(name, description string) error {
	if p.deleted {
		return structuralf("project %s has been deleted", p.id)
	}
	if err := validateProject(name, description); err != nil {
		return err
	}
	now := p.opts.clock()
	p.name = name
	p.description = description
	p.updatedAt = now
	p.record(ProjectUpdated{EventMeta: EventMeta{Aggregate: p.id, At: now}, Name: name, Description: description})
	return nil
}

// Delete marks the project deleted.
func (p *Project) Delete() error {
	if p.deleted {
		return structuralf("project %s has been deleted", p.id)
	}
	now := p.opts.clock()
	p.deleted = true
	p.updatedAt = now
	p.record(ProjectDeleted{EventMeta: EventMeta{Aggregate: p.id, At: now}})
	return nil
}

// ProjectSnapshot is the stored form of a Project.
type ProjectSnapshot struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Project) Snapshot() ProjectSnapshot {
	return ProjectSnapshot{
		ID:          p.id,
		Name:        p.name,
		Description: p.description,
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
	}
}

// RehydrateProject rebuilds a Project from stored state.
func RehydrateProject(s ProjectSnapshot, opts ...Option) (*Project, error) {
	if strings.TrimSpace(s.ID) == "" {
		return nil, validationf("project id cannot be empty")
	}
	if err := validateProject(s.Name, s.Description); err != nil {
		return nil, err
	}
	return &Project{
		id:          s.ID,
		name:        s.Name,
		description: s.Description,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
		opts:        buildOptions(opts),
	}, nil
}
