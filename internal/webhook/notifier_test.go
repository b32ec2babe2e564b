package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsJSON(t *testing.T) {
	received := make(chan map[string]interface{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, time.Second)
	require.True(t, n.Enabled())

	n.Send(map[string]interface{}{"periodo": "semanal", "numero_entradas": 2})
	n.Wait()

	select {
	case body := <-received:
		assert.Equal(t, "semanal", body["periodo"])
		assert.Equal(t, float64(2), body["numero_entradas"])
	default:
		t.Fatal("webhook was not called")
	}
}

func TestSendIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, time.Second)
	n.Send(map[string]string{"a": "b"})
	n.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSendDoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, 5*time.Second)

	done := make(chan struct{})
	go func() {
		n.Send(map[string]string{"a": "b"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send blocked on delivery")
	}

	close(release)
	n.Wait()
}

func TestDeliverReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewNotifier(srv.URL, time.Second).Deliver(context.Background(), map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestDisabledNotifier(t *testing.T) {
	n := NewNotifier("", 0)
	assert.False(t, n.Enabled())

	n.Send(map[string]string{"a": "b"})
	n.Wait()

	assert.Error(t, n.Deliver(context.Background(), map[string]string{}))

	var nilNotifier *Notifier
	assert.False(t, nilNotifier.Enabled())
	nilNotifier.Wait()
}
