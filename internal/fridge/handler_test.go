package fridge

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgenet/internal/fault"
	"fridgenet/internal/geo"
	"fridgenet/internal/inventory"
)

type stubService struct {
	nearby    []*NearbyFridge
	nearbyErr error
	unlockErr error
	lockErr   error

	lastOrigin *geo.Point
	lockCalls  int
}

func (s *stubService) Nearby(_ context.Context, _ geo.Point) ([]*NearbyFridge, error) {
	return s.nearby, s.nearbyErr
}

func (s *stubService) Unlock(_ context.Context, _ uuid.UUID, origin *geo.Point) error {
	s.lastOrigin = origin
	return s.unlockErr
}

func (s *stubService) Lock(_ context.Context, _ uuid.UUID) error {
	s.lockCalls++
	return s.lockErr
}

func (s *stubService) GetFridge(context.Context, uuid.UUID) (*Fridge, error) {
	return nil, fault.NotFoundf("not wired")
}

func post(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleLoadValidation(t *testing.T) {
	h := NewHandler(&stubService{})

	rec := post(t, h.HandleLoad, `{"longitude": -73.9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h.HandleLoad, `{"latitude": 40.7}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h.HandleLoad, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Zero is a legal coordinate, not a missing one.
	rec = post(t, h.HandleLoad, `{"latitude": 0, "longitude": 0}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleLoadReturnsOrderedFridges(t *testing.T) {
	near := &NearbyFridge{DistanceMeters: 120, Items: []inventory.Item{}}
	far := &NearbyFridge{DistanceMeters: 2400, Items: []inventory.Item{}}
	near.ID, far.ID = uuid.New(), uuid.New()

	h := NewHandler(&stubService{nearby: []*NearbyFridge{near, far}})
	rec := post(t, h.HandleLoad, `{"latitude": 40.730, "longitude": -73.935}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		Distance float64          `json:"distance"`
		Items    []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 120.0, got[0].Distance)
	assert.NotNil(t, got[0].Items, "empty fridges serialize an empty list, not null")
}

func TestHandleUnlock(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc)

	rec := post(t, h.HandleUnlock, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h.HandleUnlock, `{"fridgeId": "not-a-uuid"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h.HandleUnlock, `{"fridgeId": "`+uuid.NewString()+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())
	assert.Nil(t, svc.lastOrigin)

	// Reported position is forwarded to the policy.
	rec = post(t, h.HandleUnlock, `{"fridgeId": "`+uuid.NewString()+`", "latitude": 40.73, "longitude": -73.935}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastOrigin)
	assert.Equal(t, 40.73, svc.lastOrigin.Latitude)
}

func TestHandleUnlockFailures(t *testing.T) {
	h := NewHandler(&stubService{unlockErr: fault.NotFoundf("fridge")})
	rec := post(t, h.HandleUnlock, `{"fridgeId": "`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h = NewHandler(&stubService{unlockErr: ErrTooFar})
	rec = post(t, h.HandleUnlock, `{"fridgeId": "`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleLock(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc)

	rec := post(t, h.HandleLock, `{"fridgeId": "`+uuid.NewString()+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())
	assert.Equal(t, 1, svc.lockCalls)

	rec = post(t, h.HandleLock, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
