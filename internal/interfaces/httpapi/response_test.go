package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/fantasyteam"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/usecase"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_RosterRuleViolationsAreBadRequests(t *testing.T) {
	ruleErrs := []error{
		fantasyteam.ErrInvalidRosterSize,
		fantasyteam.ErrExceededBudget,
		fantasyteam.ErrExceededTeamLimit,
		fantasyteam.ErrInsufficientFormation,
		fantasyteam.ErrUnknownPositionPicked,
		fantasyteam.ErrDuplicatePlayer,
	}
	for _, err := range ruleErrs {
		mapped := mapError(context.Background(), fmt.Errorf("save: %w", err))
		if mapped.HTTPStatus != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", err, mapped.HTTPStatus)
		}
	}

	mapped := mapError(context.Background(), fmt.Errorf("boom"))
	if mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unknown error, got %d", mapped.HTTPStatus)
	}
}
