package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchPage(t *testing.T) {
	var gotLanguage string
	var gotCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLanguage = r.Header.Get("Accept-Language")
		if _, err := r.Cookie("session"); err == nil {
			gotCookie = true
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	client, err := NewClient(ClientOptions{Timeout: 5 * time.Second})
	require.NoError(t, err)

	ctx := context.Background()
	body, err := client.FetchPage(ctx, srv.URL+"/tienda/pdp/1")
	require.NoError(t, err)
	require.Equal(t, "<html>ok</html>", body)
	require.Equal(t, "es-MX,en-US;q=0.7,en;q=0.3", gotLanguage)
	require.False(t, gotCookie)

	_, err = client.FetchPage(ctx, srv.URL+"/tienda/pdp/1")
	require.NoError(t, err)
	require.True(t, gotCookie)
}

func TestFetchPageStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	_, err = client.FetchPage(context.Background(), srv.URL)
	var status *StatusError
	require.True(t, errors.As(err, &status))
	require.Equal(t, http.StatusForbidden, status.Code)
}
