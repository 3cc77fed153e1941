package cnst

const (
	// ApiServerYaml is the default configuration file name for the API server
	ApiServerYaml = "apiserver.yaml"
)
