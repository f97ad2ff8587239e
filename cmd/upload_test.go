// ABOUTME: Tests for the upload command
// ABOUTME: Verifies parallel upload output, JSON shape and worst-case exit code

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sikan777/AtlanticPhoto/internal/client"
	"github.com/Sikan777/AtlanticPhoto/internal/gallery"
)

func imageBackend(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if strings.HasPrefix(header.Filename, "bad") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"url": "https://img.example/" + header.Filename})
	})
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("image"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUploadCommand_Success(t *testing.T) {
	useBackend(t, imageBackend(t))
	path := writeImage(t, "sunset.jpg")

	var buf bytes.Buffer
	code := runUpload(context.Background(), &buf, []string{path}, "")

	if code != exitOK {
		t.Errorf("expected exit code 0, got %d (%s)", code, buf.String())
	}
	if !strings.Contains(buf.String(), "https://img.example/sunset.jpg") {
		t.Errorf("expected url in output, got %q", buf.String())
	}
}

func TestUploadCommand_JSONAndExitCode(t *testing.T) {
	useBackend(t, imageBackend(t))
	jsonOutput = true
	good := writeImage(t, "good.png")
	bad := writeImage(t, "bad.png")

	var buf bytes.Buffer
	code := runUpload(context.Background(), &buf, []string{good, bad}, "holiday")

	if code != exitRejected {
		t.Errorf("expected exit code 1, got %d", code)
	}

	var results []uploadResult
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Path != good || results[0].URL == "" || results[0].Error != "" {
		t.Errorf("unexpected first result %+v", results[0])
	}
	if results[1].Path != bad || results[1].Error == "" {
		t.Errorf("unexpected second result %+v", results[1])
	}
}

func TestUploadCommand_InvalidDescription(t *testing.T) {
	var requests int
	useBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(map[string]string{"url": "https://img.example/x.jpg"})
	}))
	path := writeImage(t, "sunset.jpg")

	tests := []struct {
		name        string
		description string
	}{
		{"too short", "ab"},
		{"too long", strings.Repeat("x", 151)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := runUpload(context.Background(), &buf, []string{path}, tc.description)

			if code != exitError {
				t.Errorf("expected exit code %d, got %d", exitError, code)
			}
			if !strings.Contains(buf.String(), "invalid --description") {
				t.Errorf("unexpected output %q", buf.String())
			}
		})
	}
	if requests != 0 {
		t.Errorf("expected no upload request, got %d", requests)
	}
}

func TestUploadExitCode(t *testing.T) {
	rejected := &client.APIError{Op: "upload", StatusCode: 500, Detail: "Failed to upload image"}
	network := &client.NetworkError{Op: "upload", Reason: "connection refused"}

	tests := []struct {
		name    string
		results []gallery.Result
		want    int
	}{
		{"all ok", []gallery.Result{{Path: "a"}, {Path: "b"}}, exitOK},
		{"one rejected", []gallery.Result{{Path: "a"}, {Path: "b", Err: rejected}}, exitRejected},
		{"network wins", []gallery.Result{{Path: "a", Err: rejected}, {Path: "b", Err: network}}, exitError},
		{"unreadable file", []gallery.Result{{Path: "a", Err: errors.New("open a: no such file")}}, exitError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := uploadExitCode(tc.results); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
