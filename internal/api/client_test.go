package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := ParseBaseURL("content.example.com")
	if err != nil {
		t.Fatalf("ParseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}

	u, err = ParseBaseURL("https://content.example.com/v1/cohort-27/?x=1#frag")
	if err != nil {
		t.Fatalf("ParseBaseURL returned error: %v", err)
	}
	if u.Path != "/v1/cohort-27" {
		t.Fatalf("path = %q, want /v1/cohort-27 kept", u.Path)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := ParseBaseURL("  "); err == nil {
		t.Fatal("ParseBaseURL empty should error")
	}
}

func TestClient_CardAndProfileEndpoints(t *testing.T) {
	t.Parallel()

	type seen struct {
		method string
		path   string
		auth   string
		body   []byte
	}
	var last seen

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		last = seen{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization"), body: body}
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/base/cards" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode([]Card{{ID: "c1", Name: "Lake"}, {ID: "c2", Name: "Ridge"}})
		case r.URL.Path == "/base/cards" && r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(Card{ID: "c9", Name: "New"})
		case r.URL.Path == "/base/users/me" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(User{ID: "u1", Name: "Ada"})
		case r.URL.Path == "/base/users/me" && r.Method == http.MethodPatch:
			_ = json.NewEncoder(w).Encode(User{ID: "u1", Name: "Grace"})
		case r.URL.Path == "/base/users/me/avatar":
			_ = json.NewEncoder(w).Encode(User{ID: "u1", Avatar: "https://img/a.png"})
		case r.URL.Path == "/base/cards/c1" && r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/base/cards/likes/c1":
			_ = json.NewEncoder(w).Encode(Card{ID: "c1", Likes: []User{{ID: "u1"}}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/base", "secret-token")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	cards, err := c.ListCards(ctx)
	if err != nil {
		t.Fatalf("ListCards returned error: %v", err)
	}
	if len(cards) != 2 || cards[0].ID != "c1" {
		t.Fatalf("ListCards = %#v, want 2 cards starting c1", cards)
	}
	if last.auth != "secret-token" {
		t.Fatalf("Authorization = %q, want secret-token", last.auth)
	}

	user, err := c.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if user.ID != "u1" || user.Name != "Ada" {
		t.Fatalf("GetProfile = %#v, want u1/Ada", user)
	}

	user, err = c.UpdateProfile(ctx, ProfileUpdate{Name: "Grace", About: "Engineer"})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if user.Name != "Grace" {
		t.Fatalf("UpdateProfile name = %q, want Grace", user.Name)
	}
	if last.method != http.MethodPatch {
		t.Fatalf("UpdateProfile method = %q, want PATCH", last.method)
	}
	var sentProfile ProfileUpdate
	if err := json.Unmarshal(last.body, &sentProfile); err != nil || sentProfile.Name != "Grace" || sentProfile.About != "Engineer" {
		t.Fatalf("UpdateProfile body = %s", last.body)
	}

	if _, err := c.UpdateAvatar(ctx, AvatarUpdate{Avatar: "https://img/a.png"}); err != nil {
		t.Fatalf("UpdateAvatar returned error: %v", err)
	}
	if last.path != "/base/users/me/avatar" {
		t.Fatalf("UpdateAvatar path = %q", last.path)
	}

	card, err := c.CreateCard(ctx, NewCard{Name: "New", Link: "https://img/n.png"})
	if err != nil {
		t.Fatalf("CreateCard returned error: %v", err)
	}
	if card.ID != "c9" {
		t.Fatalf("CreateCard id = %q, want c9", card.ID)
	}

	if err := c.DeleteCard(ctx, "c1"); err != nil {
		t.Fatalf("DeleteCard returned error: %v", err)
	}
	if last.method != http.MethodDelete || last.path != "/base/cards/c1" {
		t.Fatalf("DeleteCard request = %s %s", last.method, last.path)
	}

	liked, err := c.LikeCard(ctx, "c1")
	if err != nil {
		t.Fatalf("LikeCard returned error: %v", err)
	}
	if last.method != http.MethodPut || !liked.LikedBy("u1") {
		t.Fatalf("LikeCard request = %s, card = %#v", last.method, liked)
	}

	if _, err := c.UnlikeCard(ctx, "c1"); err != nil {
		t.Fatalf("UnlikeCard returned error: %v", err)
	}
	if last.method != http.MethodDelete || last.path != "/base/cards/likes/c1" {
		t.Fatalf("UnlikeCard request = %s %s", last.method, last.path)
	}
}

func TestClient_NonSuccessStatusBecomesStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListCards(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("ListCards error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", statusErr.Code, http.StatusForbidden)
	}
}

func TestClient_EmptyIDRejectedLocally(t *testing.T) {
	c, err := NewClient("https://content.example.com", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.DeleteCard(context.Background(), " "); err == nil {
		t.Fatal("DeleteCard with blank id should error")
	}
	if _, err := c.LikeCard(context.Background(), ""); err == nil {
		t.Fatal("LikeCard with blank id should error")
	}
}
