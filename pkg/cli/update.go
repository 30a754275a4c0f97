package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

const updateRepo = "Fepozopo/grade"

// releasesURL is the GitHub releases listing for a repo; tests point it at
// an httptest server.
var releasesURL = func(repo string) string {
	return fmt.Sprintf("https://api.github.com/repos/%s/releases", repo)
}

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// detectLatest queries the releases API and returns the highest published,
// non-prerelease version whose tag (or name) contains a semver. It returns
// (nil, nil) when there is none.
func detectLatest(repo string) (*selfupdate.Release, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(releasesURL(repo))
	if err != nil {
		return nil, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	var releases []struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
		Assets     []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, fmt.Errorf("failed to decode github releases: %w", err)
	}

	var candidates []selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			if match = semverRe.FindString(r.Name); match == "" {
				continue
			}
		}
		v, err := semver.Parse(strings.TrimPrefix(match, "v"))
		if err != nil {
			continue
		}
		rel := selfupdate.Release{Version: v, Name: r.Name}
		// prefer an asset built for this platform family, else the first one
		for _, a := range r.Assets {
			n := strings.ToLower(a.Name)
			if strings.Contains(n, "darwin") || strings.Contains(n, "linux") || strings.Contains(n, "windows") ||
				strings.Contains(n, "amd64") || strings.Contains(n, "arm64") {
				rel.AssetURL = a.BrowserDownloadURL
				break
			}
			if rel.AssetURL == "" {
				rel.AssetURL = a.BrowserDownloadURL
			}
		}
		candidates = append(candidates, rel)
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Version.GT(candidates[j].Version)
	})
	return &candidates[0], nil
}

// CheckForUpdates reports the latest release and, after confirm returns
// "y", replaces the running binary with it and restarts.
func CheckForUpdates(confirm func(prompt string) (string, error)) error {
	fmt.Printf("Current version: %s\n", Version)
	latest, err := detectLatest(updateRepo)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if latest == nil {
		fmt.Printf("No releases found for %s.\n", updateRepo)
		return nil
	}
	fmt.Printf("Latest version: %s\n", latest.Version)

	current, perr := semver.Parse(strings.TrimPrefix(Version, "v"))
	if perr != nil {
		fmt.Printf("warning: could not parse current version %q: %v\n", Version, perr)
	}
	if perr == nil && !latest.Version.GT(current) {
		fmt.Printf("You are already running the latest version: %s.\n", current)
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Printf("A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		return nil
	}

	answer, err := confirm(fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
		fmt.Println("Update cancelled.")
		return nil
	}

	fmt.Println("Updating...")
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	// Exec only returns on error; then start the new binary as a child.
	argv := append([]string{exe}, os.Args[1:]...)
	if err := syscall.Exec(exe, argv, os.Environ()); err != nil {
		cmd := exec.Command(exe, os.Args[1:]...)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		if startErr := cmd.Start(); startErr != nil {
			fmt.Printf("Updated to version %s; please restart manually.\n", latest.Version)
			return nil
		}
		os.Exit(0)
	}
	return nil
}
