package commands

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"

	"code.cloudfoundry.org/lager"

	"github.com/laplus-sadness/sjisgrep/apply"
)

const latestReleaseURL = "https://api.github.com/repos/laplus-sadness/sjisgrep/releases/latest"

type UpdateCommand struct {
	Debug bool `long:"debug" description:"enables debug logging"`
}

type gitHubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type gitHubRelease struct {
	TagName string        `json:"tag_name"`
	Assets  []gitHubAsset `json:"assets"`
}

func (r gitHubRelease) asset(name string) string {
	for _, a := range r.Assets {
		if a.Name == name {
			return a.BrowserDownloadURL
		}
	}

	return ""
}

func (command *UpdateCommand) Execute(args []string) error {
	logger := lager.NewLogger("sjisgrep")
	if command.Debug {
		logger.RegisterSink(lager.NewWriterSink(os.Stderr, lager.DEBUG))
	}
	logger = logger.Session("update")

	var release gitHubRelease
	if err := getJSON(latestReleaseURL, &release); err != nil {
		logger.Error("fetch-release-failed", err)
		return err
	}

	if release.TagName == version {
		fmt.Println("Already up to date.")
		return nil
	}

	assetName := fmt.Sprintf("sjisgrep_%s_%s", runtime.GOOS, runtime.GOARCH)
	downloadURL := release.asset(assetName)
	if downloadURL == "" {
		return errors.New("unable to update sjisgrep for this OS")
	}

	var opts apply.Options
	if checksumURL := release.asset(assetName + ".sha256"); checksumURL != "" {
		checksum, err := fetchChecksum(checksumURL)
		if err != nil {
			logger.Error("fetch-checksum-failed", err)
			return err
		}
		opts.Checksum = checksum
	}

	fmt.Println("Downloading new sjisgrep...")
	body, err := get(downloadURL)
	if err != nil {
		logger.Error("download-failed", err)
		return err
	}
	defer body.Close()

	if err := apply.Apply(logger, body, opts); err != nil {
		return err
	}

	fmt.Printf("Upgraded from %s to %s.\n", version, release.TagName)

	return nil
}

func get(url string) (io.ReadCloser, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: %s", url, resp.Status)
	}

	return resp.Body, nil
}

func getJSON(url string, v interface{}) error {
	body, err := get(url)
	if err != nil {
		return err
	}
	defer body.Close()

	return json.NewDecoder(body).Decode(v)
}

// fetchChecksum reads a sha256sum style file and returns the digest.
func fetchChecksum(url string) ([]byte, error) {
	body, err := get(url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	content, err := io.ReadAll(io.LimitReader(body, 1024))
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(string(content))
	if len(fields) == 0 {
		return nil, errors.New("empty checksum file")
	}

	return hex.DecodeString(fields[0])
}
