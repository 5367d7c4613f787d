package domain

// DisplayID returns the first eight characters of id, the form the CLI
// prints and accepts as a prefix.
func DisplayID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
