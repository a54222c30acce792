package fiscal

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresherRunOnce(t *testing.T) {
	banxicoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"bmx":{"series":[{"datos":[{"fecha":"28/08/2026","dato":"19.1100"}]}]}}`)
	}))
	defer banxicoSrv.Close()

	inegiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, inegiBody(fmt.Sprint(time.Now().Year()), "41,273.52"))
	}))
	defer inegiSrv.Close()

	banxico := NewBanxicoClient("t", nil)
	banxico.baseURL = banxicoSrv.URL
	inegi := NewINEGIClient("t", nil)
	inegi.baseURL = inegiSrv.URL + "/%s"

	store := NewStore(nil)
	require.NoError(t, store.Load(testFiscalYear()))

	r, err := NewRefresher(store, nil, banxico, inegi, RefresherConfig{}, nil)
	require.NoError(t, err)

	require.NoError(t, r.RunOnce(context.Background()))

	fy, err := store.Active()
	require.NoError(t, err)
	assert.Equal(t, "19.11", fy.USDMXNRate.String())
	assert.Equal(t, "113.08", fy.UMADaily.String())
}

func TestRefresherRunOnceReportsFetchFailure(t *testing.T) {
	banxicoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer banxicoSrv.Close()

	inegiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, inegiBody(fmt.Sprint(time.Now().Year()), "41,273.52"))
	}))
	defer inegiSrv.Close()

	banxico := NewBanxicoClient("t", nil)
	banxico.baseURL = banxicoSrv.URL
	inegi := NewINEGIClient("t", nil)
	inegi.baseURL = inegiSrv.URL + "/%s"

	store := NewStore(nil)
	require.NoError(t, store.Load(testFiscalYear()))

	r, err := NewRefresher(store, nil, banxico, inegi, RefresherConfig{}, nil)
	require.NoError(t, err)

	// The rate fetch fails but the UMA refresh still lands.
	require.Error(t, r.RunOnce(context.Background()))

	fy, err := store.Active()
	require.NoError(t, err)
	assert.Equal(t, "20", fy.USDMXNRate.String())
	assert.Equal(t, "113.08", fy.UMADaily.String())
}

func TestNewRefresherRejectsBadSchedule(t *testing.T) {
	store := NewStore(nil)
	_, err := NewRefresher(store, nil, NewBanxicoClient("t", nil), NewINEGIClient("t", nil),
		RefresherConfig{BanxicoSchedule: "not a schedule"}, nil)
	assert.Error(t, err)
}
