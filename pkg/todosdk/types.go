package todosdk

// HealthResponse is the body of /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each dependency in /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}

// Task is one row of the rendered task list.
type Task struct {
	ID          string
	Description string
	Complete    bool
}

// Page is a rendered HTML page reduced to the parts a client cares about.
type Page struct {
	StatusCode int
	Path       string // path of the final URL, after redirects
	Heading    string
	Error      string // inline form error, if any
	Tasks      []Task
}
