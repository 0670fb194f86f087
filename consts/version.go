package consts

const AppName = "webshare-stremio"

// These will be injected via -ldflags at build time
var (
	gitSha    string = "unknown"
	gitTag    string = "unknown"
	buildDate string = "unknown"
)

func GetBuildInfo() map[string]string {
	return map[string]string{
		"name":     AppName,
		"revision": gitSha,
		"version":  gitTag,
		"built":    buildDate,
	}
}

// UserAgent is sent with every upstream request.
func UserAgent() string {
	return AppName + "/" + gitTag
}
