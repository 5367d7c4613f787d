package cli

import (
	"testing"

	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAmong(t *testing.T) {
	candidates := []candidate{
		{id: "a1b2c3d4-0000", name: "Todo"},
		{id: "a1ffeeee-0000", name: "Doing"},
		{id: "99990000-0000", name: "todo"},
		{id: "55550000-0000", name: "Done"},
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
		kind    error
	}{
		{name: "exact id", input: "a1ffeeee-0000", want: "a1ffeeee-0000"},
		{name: "unique name ignores case", input: "DOING", want: "a1ffeeee-0000"},
		{name: "unique prefix", input: "5555", want: "55550000-0000"},
		{name: "trims whitespace", input: "  done ", want: "55550000-0000"},
		{name: "ambiguous prefix", input: "a1", wantErr: "ambiguous"},
		{name: "ambiguous name", input: "Todo", wantErr: "use an ID"},
		{name: "empty", input: " ", wantErr: "required"},
		{name: "missing", input: "Blocked", kind: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveAmong("column", tt.input, candidates)
			switch {
			case tt.kind != nil:
				assert.ErrorIs(t, err, tt.kind)
			case tt.wantErr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveBoardID_AcrossProjects(t *testing.T) {
	app := testApp(t)
	mustRun(t, app, "project", "add", "--name", "Home")
	mustRun(t, app, "project", "add", "--name", "Work")
	mustRun(t, app, "board", "add", "-p", "Home", "--name", "Chores")
	mustRun(t, app, "board", "add", "-p", "Work", "--name", "Sprint")

	d := boardByName(t, app, "sprint")
	assert.Equal(t, "Sprint", d.Name)

	mustRun(t, app, "board", "add", "-p", "Work", "--name", "Chores")
	_, err := executeCmd(t, app, "board", "show", "Chores")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}
