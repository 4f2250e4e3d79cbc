package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func createQuest(t *testing.T, router *gin.Engine, userID string, body map[string]any) map[string]any {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/quests?userId="+userID, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating quest: status %d body %s", rec.Code, rec.Body.String())
	}
	return decodeBody(t, rec)["data"].(map[string]any)
}

func TestCreateQuest(t *testing.T) {
	router := setupRouter(t)
	userID := registerUser(t, router, "hero@example.com", "hero")

	quest := createQuest(t, router, userID, map[string]any{
		"title":             "  Slay the <dragon>  ",
		"difficulty":        "EPIC",
		"estimatedDuration": 120,
		"tags":              []string{"combat", "dragons"},
	})

	if quest["status"] != "DRAFT" {
		t.Fatalf("new quest must start in DRAFT, got %v", quest["status"])
	}
	if quest["priority"] != "MEDIUM" {
		t.Fatalf("priority must default to MEDIUM, got %v", quest["priority"])
	}
	if quest["completedAt"] != nil {
		t.Fatalf("new quest must not be completed, got %v", quest["completedAt"])
	}
	if quest["title"] != "Slay the dragon" {
		t.Fatalf("title must be sanitized, got %v", quest["title"])
	}
	if quest["userId"] != userID {
		t.Fatalf("quest must belong to the creator, got %v", quest["userId"])
	}

	tags := quest["tags"].([]any)
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", tags)
	}
	steps, ok := quest["steps"].([]any)
	if !ok || len(steps) != 0 {
		t.Fatalf("steps must be an empty array, got %v", quest["steps"])
	}
}

func TestCreateQuestValidation(t *testing.T) {
	router := setupRouter(t)
	userID := registerUser(t, router, "hero@example.com", "hero")

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"missing title", map[string]any{"difficulty": "EASY", "estimatedDuration": 10}, "title"},
		{"bad difficulty", map[string]any{"title": "x", "difficulty": "IMPOSSIBLE", "estimatedDuration": 10}, "difficulty"},
		{"zero duration", map[string]any{"title": "x", "difficulty": "EASY", "estimatedDuration": 0}, "estimatedDuration"},
		{"excessive duration", map[string]any{"title": "x", "difficulty": "EASY", "estimatedDuration": 2000}, "estimatedDuration"},
		{"bad priority", map[string]any{"title": "x", "difficulty": "EASY", "estimatedDuration": 10, "priority": "WHENEVER"}, "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/quests?userId="+userID, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			block := errorBlock(t, rec)
			if block["code"] != "VALIDATION_ERROR" || block["field"] != tt.field {
				t.Fatalf("unexpected error block: %v", block)
			}
		})
	}
}

func TestCreateQuestUnknownUser(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost,
		"/quests?userId=99999999-9999-4999-8999-999999999999", map[string]any{
			"title":             "Orphan",
			"difficulty":        "EASY",
			"estimatedDuration": 10,
		})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	block := errorBlock(t, rec)
	if block["code"] != "NOT_FOUND_ERROR" {
		t.Fatalf("unexpected error block: %v", block)
	}
}

func TestInvalidUserIDParam(t *testing.T) {
	router := setupRouter(t)

	for _, path := range []string{"/quests", "/quests?userId=not-a-uuid"} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", path, rec.Code)
		}
		block := errorBlock(t, rec)
		if block["code"] != "VALIDATION_ERROR" || block["field"] != "userId" {
			t.Fatalf("unexpected error block for %q: %v", path, block)
		}
	}
}

func TestInvalidQuestIDPath(t *testing.T) {
	router := setupRouter(t)
	userID := registerUser(t, router, "hero@example.com", "hero")

	rec := doJSON(t, router, http.MethodGet, "/quests/not-a-uuid?userId="+userID, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	block := errorBlock(t, rec)
	if block["field"] != "id" {
		t.Fatalf("expected id field, got %v", block)
	}
}

func TestGetForeignQuest(t *testing.T) {
	router := setupRouter(t)
	owner := registerUser(t, router, "owner@example.com", "owner")
	intruder := registerUser(t, router, "intruder@example.com", "intruder")

	quest := createQuest(t, router, owner, map[string]any{
		"title":             "Private",
		"difficulty":        "MEDIUM",
		"estimatedDuration": 30,
	})
	id := quest["id"].(string)

	rec := doJSON(t, router, http.MethodGet, "/quests/"+id+"?userId="+intruder, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign quest must read as 404, got %d", rec.Code)
	}
	block := errorBlock(t, rec)
	if block["message"] != "Quest with id "+id+" not found" {
		t.Fatalf("unexpected message: %v", block["message"])
	}
}

func TestUpdateQuestCompletion(t *testing.T) {
	router := setupRouter(t)
	userID := registerUser(t, router, "hero@example.com", "hero")
	quest := createQuest(t, router, userID, map[string]any{
		"title":             "Finish line",
		"difficulty":        "HARD",
		"estimatedDuration": 90,
	})
	id := quest["id"].(string)

	rec := doJSON(t, router, http.MethodPut, "/quests/"+id+"?userId="+userID, map[string]any{
		"status": "COMPLETED",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody(t, rec)["data"].(map[string]any)
	if updated["status"] != "COMPLETED" {
		t.Fatalf("status not applied: %v", updated["status"])
	}
	stamp, ok := updated["completedAt"].(string)
	if !ok || stamp == "" {
		t.Fatalf("completedAt must be stamped, got %v", updated["completedAt"])
	}

	rec = doJSON(t, router, http.MethodPut, "/quests/"+id+"?userId="+userID, map[string]any{
		"status": "COMPLETED",
	})
	repeated := decodeBody(t, rec)["data"].(map[string]any)
	if repeated["completedAt"] != stamp {
		t.Fatalf("completedAt must not move on repeat completion: %v vs %v", repeated["completedAt"], stamp)
	}
}

func TestUpdateQuestTags(t *testing.T) {
	router := setupRouter(t)
	userID := registerUser(t, router, "hero@example.com", "hero")
	quest := createQuest(t, router, userID, map[string]any{
		"title":             "Tagged",
		"difficulty":        "EASY",
		"estimatedDuration": 15,
		"tags":              []string{"old-a", "old-b"},
	})
	id := quest["id"].(string)

	// Omitting tags keeps the stored set.
	rec := doJSON(t, router, http.MethodPut, "/quests/"+id+"?userId="+userID, map[string]any{
		"title": "Still tagged",
	})
	kept := decodeBody(t, rec)["data"].(map[string]any)
	if len(kept["tags"].([]any)) != 2 {
		t.Fatalf("absent tags must not touch the stored set, got %v", kept["tags"])
	}

	// A present set replaces wholesale.
	rec = doJSON(t, router, http.MethodPut, "/quests/"+id+"?userId="+userID, map[string]any{
		"tags": []string{"fresh"},
	})
	replaced := decodeBody(t, rec)["data"].(map[string]any)
	tags := replaced["tags"].([]any)
	if len(tags) != 1 || tags[0].(map[string]any)["tagName"] != "fresh" {
		t.Fatalf("tags not replaced, got %v", tags)
	}

	// An empty array clears everything and still serializes as [].
	rec = doJSON(t, router, http.MethodPut, "/quests/"+id+"?userId="+userID, map[string]any{
		"tags": []string{},
	})
	cleared := decodeBody(t, rec)["data"].(map[string]any)
	if got, ok := cleared["tags"].([]any); !ok || len(got) != 0 {
		t.Fatalf("expected empty tags array, got %v", cleared["tags"])
	}
}

func TestDeleteQuest(t *testing.T) {
	router := setupRouter(t)
	userID := registerUser(t, router, "hero@example.com", "hero")
	quest := createQuest(t, router, userID, map[string]any{
		"title":             "Ephemeral",
		"difficulty":        "EASY",
		"estimatedDuration": 5,
	})
	id := quest["id"].(string)

	rec := doJSON(t, router, http.MethodDelete, "/quests/"+id+"?userId="+userID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Quest deleted successfully" {
		t.Fatalf("unexpected body: %v", body)
	}

	rec = doJSON(t, router, http.MethodGet, "/quests/"+id+"?userId="+userID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleted quest must be gone, got %d", rec.Code)
	}
}

func TestListQuests(t *testing.T) {
	router := setupRouter(t)
	userID := registerUser(t, router, "hero@example.com", "hero")

	for _, title := range []string{"one", "two", "three"} {
		createQuest(t, router, userID, map[string]any{
			"title":             title,
			"difficulty":        "EASY",
			"estimatedDuration": 10,
		})
	}

	rec := doJSON(t, router, http.MethodGet, "/quests?userId="+userID+"&limit=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if len(body["data"].([]any)) != 2 {
		t.Fatalf("expected 2 quests on page, got %v", body["data"])
	}
	meta := body["pagination"].(map[string]any)
	if meta["total"] != float64(3) || meta["totalPages"] != float64(2) || meta["hasNext"] != true {
		t.Fatalf("unexpected pagination: %v", meta)
	}
}

func TestListQuestsInvalidFilter(t *testing.T) {
	router := setupRouter(t)
	userID := registerUser(t, router, "hero@example.com", "hero")
	createQuest(t, router, userID, map[string]any{
		"title":             "Quest",
		"difficulty":        "EASY",
		"estimatedDuration": 10,
	})

	rec := doJSON(t, router, http.MethodGet, "/quests?userId="+userID+"&status=BOGUS", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("invalid filter value must yield 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	data, ok := body["data"].([]any)
	if !ok || len(data) != 0 {
		t.Fatalf("expected empty data array, got %v", body["data"])
	}
	meta := body["pagination"].(map[string]any)
	if meta["totalPages"] != float64(0) || meta["hasNext"] != false || meta["hasPrev"] != false {
		t.Fatalf("unexpected pagination: %v", meta)
	}
}

func TestListQuestsClampsPagination(t *testing.T) {
	router := setupRouter(t)
	userID := registerUser(t, router, "hero@example.com", "hero")

	rec := doJSON(t, router, http.MethodGet, "/quests?userId="+userID+"&page=-1&limit=1000", nil)
	meta := decodeBody(t, rec)["pagination"].(map[string]any)
	if meta["page"] != float64(1) || meta["limit"] != float64(100) {
		t.Fatalf("expected clamped window, got %v", meta)
	}
}
