package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lorecanvas/lorecanvas/db"
	"github.com/lorecanvas/lorecanvas/internal/auth"
	"github.com/lorecanvas/lorecanvas/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	dsn := fmt.Sprintf("file:api-%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	db.DB = conn

	return router.NewRouter()
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

func signup(t *testing.T, r *gin.Engine, name, email, password string) authResponse {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/auth/signup", "", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp authResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)

	return resp
}

func createProject(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/projects", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var project struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &project)

	return project.ID
}

func createCharacter(t *testing.T, r *gin.Engine, token string, projectID uint, name string) uint {
	t.Helper()

	path := fmt.Sprintf("/projects/%d/characters", projectID)
	w := doRequest(t, r, http.MethodPost, path, token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var character struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &character)

	return character.ID
}

func TestHealth(t *testing.T) {
	r := setupAPI(t)

	w := doRequest(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSignupThenLogin(t *testing.T) {
	r := setupAPI(t)

	created := signup(t, r, "Alice", "a@b.com", "password1")

	w := doRequest(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "a@b.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loggedIn authResponse
	decodeBody(t, w, &loggedIn)
	assert.Equal(t, created.User.ID, loggedIn.User.ID)

	// The token's embedded identity matches the created user.
	w = doRequest(t, r, http.MethodGet, "/auth/me", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, w, &me)
	assert.Equal(t, created.User.ID, me.User.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := setupAPI(t)

	signup(t, r, "Alice", "a@b.com", "password1")

	w := doRequest(t, r, http.MethodPost, "/auth/signup", "", gin.H{
		"name":     "Impostor",
		"email":    "a@b.com",
		"password": "password2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupShortPassword(t *testing.T) {
	r := setupAPI(t)

	w := doRequest(t, r, http.MethodPost, "/auth/signup", "", gin.H{
		"name":     "Alice",
		"email":    "a@b.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupAPI(t)

	signup(t, r, "Alice", "a@b.com", "password1")

	w := doRequest(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "a@b.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	unknown := doRequest(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "nobody@b.com",
		"password": "password1",
	})
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	// Same envelope for unknown email and wrong password.
	assert.JSONEq(t, w.Body.String(), unknown.Body.String())
}

func TestProjectRoutesRequireToken(t *testing.T) {
	r := setupAPI(t)

	w := doRequest(t, r, http.MethodGet, "/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodGet, "/projects", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A token for user A must not open user B's project on any project-scoped
// route; the response is 404 everywhere so project ids cannot be probed.
func TestTenantIsolation(t *testing.T) {
	r := setupAPI(t)

	owner := signup(t, r, "Owner", "owner@b.com", "password1")
	intruder := signup(t, r, "Intruder", "intruder@b.com", "password1")

	projectID := createProject(t, r, owner.Token, "Eldoria")
	characterID := createCharacter(t, r, owner.Token, projectID, "King")

	base := fmt.Sprintf("/projects/%d", projectID)

	routes := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, base, nil},
		{http.MethodPut, base, gin.H{"name": "Stolen"}},
		{http.MethodDelete, base, nil},
		{http.MethodGet, base + "/characters", nil},
		{http.MethodPost, base + "/characters", gin.H{"name": "Spy"}},
		{http.MethodGet, fmt.Sprintf("%s/characters/%d", base, characterID), nil},
		{http.MethodPut, fmt.Sprintf("%s/characters/%d", base, characterID), gin.H{"name": "Spy"}},
		{http.MethodDelete, fmt.Sprintf("%s/characters/%d", base, characterID), nil},
		{http.MethodGet, base + "/relationships", nil},
		{http.MethodPost, base + "/relationships", gin.H{"source_character_id": 1, "target_character_id": 2}},
		{http.MethodPut, base + "/relationships/1", gin.H{"label": "x"}},
		{http.MethodDelete, base + "/relationships/1", nil},
	}

	for _, route := range routes {
		w := doRequest(t, r, route.method, route.path, intruder.Token, route.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", route.method, route.path)
	}

	// The owner still sees an untouched project.
	w := doRequest(t, r, http.MethodGet, base, owner.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCharacterMetadataRoundTripOverHTTP(t *testing.T) {
	r := setupAPI(t)

	user := signup(t, r, "Alice", "a@b.com", "password1")
	projectID := createProject(t, r, user.Token, "Eldoria")

	path := fmt.Sprintf("/projects/%d/characters", projectID)
	w := doRequest(t, r, http.MethodPost, path, user.Token, gin.H{
		"name":     "King",
		"metadata": gin.H{"x": 1},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID       uint                   `json:"id"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	decodeBody(t, w, &created)
	assert.Equal(t, float64(1), created.Metadata["x"])

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("%s/%d", path, created.ID), user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched struct {
		Metadata map[string]interface{} `json:"metadata"`
	}
	decodeBody(t, w, &fetched)
	assert.Equal(t, created.Metadata, fetched.Metadata)
}

// The full worldbuilding flow from signup to a hydrated edge list.
func TestWorldbuildingScenario(t *testing.T) {
	r := setupAPI(t)

	user := signup(t, r, "Alice", "a@b.com", "password1")
	projectID := createProject(t, r, user.Token, "Eldoria")
	kingID := createCharacter(t, r, user.Token, projectID, "King")
	queenID := createCharacter(t, r, user.Token, projectID, "Queen")

	relationshipsPath := fmt.Sprintf("/projects/%d/relationships", projectID)

	w := doRequest(t, r, http.MethodPost, relationshipsPath, user.Token, gin.H{
		"source_character_id": kingID,
		"target_character_id": queenID,
		"label":               "husband of",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Identical ordered pair conflicts; the reverse pair is a new edge.
	w = doRequest(t, r, http.MethodPost, relationshipsPath, user.Token, gin.H{
		"source_character_id": kingID,
		"target_character_id": queenID,
		"label":               "married to",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, r, http.MethodPost, relationshipsPath, user.Token, gin.H{
		"source_character_id": queenID,
		"target_character_id": kingID,
		"label":               "wife of",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Self-relationships never pass validation.
	w = doRequest(t, r, http.MethodPost, relationshipsPath, user.Token, gin.H{
		"source_character_id": kingID,
		"target_character_id": kingID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, relationshipsPath, user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var relationships []struct {
		SourceCharacterName string `json:"source_character_name"`
		TargetCharacterName string `json:"target_character_name"`
		Label               string `json:"label"`
	}
	decodeBody(t, w, &relationships)
	require.Len(t, relationships, 2)
	assert.Equal(t, "King", relationships[0].SourceCharacterName)
	assert.Equal(t, "Queen", relationships[0].TargetCharacterName)
	assert.Equal(t, "husband of", relationships[0].Label)

	// Deleting the queen removes every edge touching her.
	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/projects/%d/characters/%d", projectID, queenID), user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, relationshipsPath, user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestDuplicateCharacterNamePerProject(t *testing.T) {
	r := setupAPI(t)

	user := signup(t, r, "Alice", "a@b.com", "password1")
	projectID := createProject(t, r, user.Token, "Eldoria")
	otherID := createProject(t, r, user.Token, "Midgard")

	createCharacter(t, r, user.Token, projectID, "King")

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/projects/%d/characters", projectID), user.Token, gin.H{"name": "King"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/projects/%d/characters", otherID), user.Token, gin.H{"name": "King"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetCharacterWithRelationshipsOverHTTP(t *testing.T) {
	r := setupAPI(t)

	user := signup(t, r, "Alice", "a@b.com", "password1")
	projectID := createProject(t, r, user.Token, "Eldoria")
	kingID := createCharacter(t, r, user.Token, projectID, "King")
	queenID := createCharacter(t, r, user.Token, projectID, "Queen")

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/projects/%d/relationships", projectID), user.Token, gin.H{
		"source_character_id": kingID,
		"target_character_id": queenID,
		"label":               "husband of",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	path := fmt.Sprintf("/projects/%d/characters/%d?include_relationships=true", projectID, kingID)
	w = doRequest(t, r, http.MethodGet, path, user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var character struct {
		Name          string `json:"name"`
		Relationships *struct {
			Outgoing []struct {
				TargetCharacterName string `json:"target_character_name"`
			} `json:"outgoing"`
			Incoming []struct {
				SourceCharacterName string `json:"source_character_name"`
			} `json:"incoming"`
		} `json:"relationships"`
	}
	decodeBody(t, w, &character)
	require.NotNil(t, character.Relationships)
	require.Len(t, character.Relationships.Outgoing, 1)
	assert.Equal(t, "Queen", character.Relationships.Outgoing[0].TargetCharacterName)
	assert.Empty(t, character.Relationships.Incoming)
}

func TestRelationshipTypeLifecycle(t *testing.T) {
	r := setupAPI(t)

	user := signup(t, r, "Alice", "a@b.com", "password1")

	w := doRequest(t, r, http.MethodPost, "/relationship-types", user.Token, gin.H{
		"name":  "family",
		"color": "#0a0",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &created)

	projectID := createProject(t, r, user.Token, "Eldoria")
	kingID := createCharacter(t, r, user.Token, projectID, "King")
	queenID := createCharacter(t, r, user.Token, projectID, "Queen")

	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/projects/%d/relationships", projectID), user.Token, gin.H{
		"source_character_id":  kingID,
		"target_character_id":  queenID,
		"relationship_type_id": created.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var relationship struct {
		ID                 uint  `json:"id"`
		RelationshipTypeID *uint `json:"relationship_type_id"`
	}
	decodeBody(t, w, &relationship)
	require.NotNil(t, relationship.RelationshipTypeID)

	// Deleting the type detaches it; the edge survives.
	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/relationship-types/%d", created.ID), user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/projects/%d/relationships", projectID), user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var relationships []struct {
		ID                 uint  `json:"id"`
		RelationshipTypeID *uint `json:"relationship_type_id"`
	}
	decodeBody(t, w, &relationships)
	require.Len(t, relationships, 1)
	assert.Nil(t, relationships[0].RelationshipTypeID)
}

func TestUpdateCharacterPartialOverHTTP(t *testing.T) {
	r := setupAPI(t)

	user := signup(t, r, "Alice", "a@b.com", "password1")
	projectID := createProject(t, r, user.Token, "Eldoria")

	path := fmt.Sprintf("/projects/%d/characters", projectID)
	w := doRequest(t, r, http.MethodPost, path, user.Token, gin.H{
		"name":        "King",
		"description": "Ruler of Eldoria",
		"position":    gin.H{"x": 5, "y": 7},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &created)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("%s/%d", path, created.ID), user.Token, gin.H{
		"name": "High King",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Position    *struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		} `json:"position"`
	}
	decodeBody(t, w, &updated)
	assert.Equal(t, "High King", updated.Name)
	assert.Equal(t, "Ruler of Eldoria", updated.Description)
	require.NotNil(t, updated.Position)
	assert.Equal(t, 5.0, updated.Position.X)
}
