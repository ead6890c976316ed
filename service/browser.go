package service

import (
	"fmt"
	"os/exec"
	"runtime"
)

// browserOpeners lists the commands tried per platform, in order; the URL
// is appended as the last argument
var browserOpeners = map[string][][]string{
	"darwin":  {{"open"}},
	"linux":   {{"xdg-open"}, {"gnome-open"}, {"kde-open"}, {"wslview"}},
	"windows": {{"rundll32", "url.dll,FileProtocolHandler"}},
}

// OpenBrowser opens url in the default browser without waiting for it
func OpenBrowser(url string) error {
	name, args, err := browserCommand(runtime.GOOS, url, exec.LookPath)
	if err != nil {
		return err
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// browserCommand picks the first opener for goos that lookPath finds
func browserCommand(goos, url string, lookPath func(string) (string, error)) (string, []string, error) {
	openers, ok := browserOpeners[goos]
	if !ok {
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
	for _, opener := range openers {
		if _, err := lookPath(opener[0]); err != nil {
			continue
		}
		args := append(append([]string{}, opener[1:]...), url)
		return opener[0], args, nil
	}
	return "", nil, fmt.Errorf("no suitable browser opener found for %s", goos)
}
