package compose

// DefaultFile is the compose configuration the environment is defined by,
// relative to the backend working directory.
const DefaultFile = "tools/docker-compose.yaml"

// Files returns the -f arguments selecting the compose configuration.
func Files() []string {
	return []string{"-f", DefaultFile}
}

// Args builds a full `compose -f <file> <sub...>` argument list. Every call
// returns a fresh slice.
func Args(sub ...string) []string {
	out := make([]string, 0, 1+2+len(sub))
	out = append(out, "compose")
	out = append(out, Files()...)
	return append(out, sub...)
}

// UpArgs brings the environment up detached and removes orphaned containers.
func UpArgs() []string {
	return []string{"up", "-d", "--remove-orphans"}
}

// DownArgs tears the environment down, removing volumes with a zero grace
// period and removing orphaned containers.
func DownArgs() []string {
	return []string{"down", "-v", "-t", "0", "--remove-orphans"}
}
