// Package service describes the public surface of the notification API.
package service

const (
	Name    = "Programme Tracker Notification API"
	Version = "1.0.0"
)

const (
	InfoPath            = "/api"
	TestPath            = "/api/test"
	CheckProgrammesPath = "/api/check-programmes"
)

type Descriptor struct {
	Name          string        `json:"name"`
	Version       string        `json:"version"`
	Endpoints     Endpoints     `json:"endpoints"`
	Documentation Documentation `json:"documentation"`
}

type Endpoints struct {
	CheckProgrammes string `json:"checkProgrammes"`
	Test            string `json:"test"`
}

type Documentation struct {
	CheckProgrammes EndpointDoc `json:"checkProgrammes"`
}

type EndpointDoc struct {
	Method      string            `json:"method"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters"`
}

// Describe returns a new descriptor on every call; callers may modify it freely.
func Describe() Descriptor {
	return Descriptor{
		Name:    Name,
		Version: Version,
		Endpoints: Endpoints{
			CheckProgrammes: CheckProgrammesPath,
			Test:            TestPath,
		},
		Documentation: Documentation{
			CheckProgrammes: EndpointDoc{
				Method:      "GET",
				Description: "Checks for programmes needing notifications",
				Parameters: map[string]string{
					"force": "Set to true to bypass time check (for testing)",
				},
			},
		},
	}
}
