package report_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisansathi/report"
)

func TestRenderer_RenderPDF(t *testing.T) {
	var gotPath, gotFilename, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		buf, err := io.ReadAll(file)
		require.NoError(t, err)
		gotBody = string(buf)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	r := report.NewRenderer(srv.URL)
	pdf, err := r.RenderPDF(context.Background(), "<html><body>ok</body></html>")
	require.NoError(t, err)

	assert.Equal(t, "/forms/chromium/convert/html", gotPath)
	assert.Equal(t, "index.html", gotFilename)
	assert.Equal(t, "<html><body>ok</body></html>", gotBody)
	assert.Equal(t, []byte("%PDF-1.4 fake"), pdf)
}

func TestRenderer_RenderPDF_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "chromium crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := report.NewRenderer(srv.URL)
	_, err := r.RenderPDF(context.Background(), "<html></html>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chromium crashed")
}

func TestRenderer_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, report.NewRenderer(srv.URL).Ping(context.Background()))
}

func TestRenderer_PingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	assert.Error(t, report.NewRenderer(srv.URL).Ping(context.Background()))
}
