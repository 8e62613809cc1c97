package version

// version is overridden at build time:
//
//	go build -ldflags "-X springer_downloader/internal/version.version=v1.2.3" ./cmd/app
var version = "dev"

func GetVersion() string {
	return version
}
