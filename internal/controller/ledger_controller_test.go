package controller

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cleanaz-dev/hueline-sub000/internal/dto"
	"github.com/cleanaz-dev/hueline-sub000/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

type fakeLedgerService struct {
	deleteCalls int
}

func (f *fakeLedgerService) Get(context.Context, string, string) (*dto.GetLedgerResponse, error) {
	return &dto.GetLedgerResponse{}, nil
}

func (f *fakeLedgerService) GetGrouped(context.Context, string, string) (*dto.GroupedLedgerResponse, error) {
	return &dto.GroupedLedgerResponse{}, nil
}

func (f *fakeLedgerService) Add(context.Context, string, string, *dto.AddScopeItemRequest) (*dto.MutateLedgerResponse, error) {
	return &dto.MutateLedgerResponse{}, nil
}

func (f *fakeLedgerService) Edit(context.Context, string, string, *dto.EditScopeItemRequest) (*dto.MutateLedgerResponse, error) {
	return &dto.MutateLedgerResponse{}, nil
}

func (f *fakeLedgerService) Delete(_ context.Context, _, _ string, req *dto.DeleteScopeItemRequest) (*dto.MutateLedgerResponse, error) {
	f.deleteCalls++
	return &dto.MutateLedgerResponse{RoomKey: "walk-42", Version: req.Version + 1}, nil
}

func (f *fakeLedgerService) Replace(context.Context, string, string, *dto.ReplaceLedgerRequest) (*dto.MutateLedgerResponse, error) {
	return &dto.MutateLedgerResponse{}, nil
}

func newLedgerTestApp(svc *fakeLedgerService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewLedgerController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func roomToken(t *testing.T, secret, tenant, room string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"tenant":   tenant,
		"room":     room,
		"identity": "pro-1",
		"role":     "HOST",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLedgerDeleteRejectsNegativeVersion(t *testing.T) {
	t.Setenv("SESSION_TOKEN_SECRET", "test-secret")
	svc := &fakeLedgerService{}
	app := newLedgerTestApp(svc)

	req := httptest.NewRequest(fiber.MethodDelete, "/api/ledger/v1/hueline/walk-42/items/t1", strings.NewReader(`{"version":-1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+roomToken(t, "test-secret", "hueline", "walk-42"))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, svc.deleteCalls, "invalid version must not reach the service")
}

func TestLedgerDeleteValidVersion(t *testing.T) {
	t.Setenv("SESSION_TOKEN_SECRET", "test-secret")
	svc := &fakeLedgerService{}
	app := newLedgerTestApp(svc)

	req := httptest.NewRequest(fiber.MethodDelete, "/api/ledger/v1/hueline/walk-42/items/t1", strings.NewReader(`{"version":3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+roomToken(t, "test-secret", "hueline", "walk-42"))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, svc.deleteCalls)
}

func TestLedgerRoutesRejectForeignRoomToken(t *testing.T) {
	t.Setenv("SESSION_TOKEN_SECRET", "test-secret")
	app := newLedgerTestApp(&fakeLedgerService{})

	req := httptest.NewRequest(fiber.MethodGet, "/api/ledger/v1/hueline/walk-42", nil)
	req.Header.Set("Authorization", "Bearer "+roomToken(t, "test-secret", "hueline", "other-room"))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
