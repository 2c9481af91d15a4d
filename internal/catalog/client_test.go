package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[
			{"id":1,"title":"iPhone 9","category":"smartphones","brand":"Apple","price":549,"rating":4.69},
			{"id":2,"title":"Laptop","category":"laptops","brand":"HP","rating":4.4}
		],"total":2}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 100, 5*time.Second)
	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "iPhone 9", products[0].Title)
	assert.Equal(t, "smartphones", products[0].Category)
	assert.Equal(t, "Apple", products[0].Brand)
	assert.Equal(t, 4.69, products[0].Rating)
}

func TestFetchProducts_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 100, 5*time.Second)
	_, err := client.FetchProducts(context.Background())
	assert.ErrorContains(t, err, "status 500")
}

func TestFetchProducts_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 100, 5*time.Second)
	_, err := client.FetchProducts(context.Background())
	assert.ErrorContains(t, err, "decoding catalog response")
}

func TestFetchProducts_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, 100, time.Second)
	_, err := client.FetchProducts(context.Background())
	assert.Error(t, err)
}
