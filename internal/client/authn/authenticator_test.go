package authn

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/carrental/internal/client/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Bearer a.b.c", Normalize("a.b.c"))
	assert.Equal(t, "Bearer a.b.c", Normalize("Bearer a.b.c"), "no double prefix")
	assert.Equal(t, "Bearer bearer a.b.c", Normalize("bearer a.b.c"), "prefix match is exact")
}

func TestApply_SetAndRemove(t *testing.T) {
	a := New()

	_, ok := a.Header()
	assert.False(t, ok, "no header before any credential")

	a.Apply("a.b.c")
	h, ok := a.Header()
	require.True(t, ok)
	assert.Equal(t, "Bearer a.b.c", h)

	a.Apply("")
	_, ok = a.Header()
	assert.False(t, ok, "absent credential removes the header")
	assert.Equal(t, uint64(2), a.applyCount())
}

func TestApply_Idempotent(t *testing.T) {
	a := New()
	a.Apply("a.b.c")
	a.Apply("a.b.c")
	a.Apply("Bearer a.b.c")

	req := httptest.NewRequest(http.MethodGet, "/api/user/data", nil)
	a.Decorate(req)

	assert.Equal(t, []string{"Bearer a.b.c"}, req.Header.Values("Authorization"))
}

func TestDecorate_RemovesStaleHeader(t *testing.T) {
	a := New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer old.old.old")

	a.Decorate(req)

	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestAuthenticator_ConcurrentReaders(t *testing.T) {
	a := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				a.Apply(credential.Credential("x.y.z"))
				return
			}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			a.Decorate(req)
		}(i)
	}
	wg.Wait()

	h, ok := a.Header()
	require.True(t, ok)
	assert.Equal(t, "Bearer x.y.z", h)
}
