package fleet

// ContainerInfo is one report row: where a container can be reached and which
// test credentials it accepts. It is derived from the runtime on every report
// and never stored.
type ContainerInfo struct {
	Name     string
	IP       string
	User     string
	Password string
}
