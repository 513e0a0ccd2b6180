package domain

import (
	"encoding/json"
	"fmt"
)

// Typed views of the opaque payloads, for presenters. The fetcher and the
// aggregator never decode beyond the declared shape.

type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
}

type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type Todo struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (r ResourceResult) User() (User, error) {
	var u User
	if r.Name != ResourceUser {
		return u, fmt.Errorf("result is %q, not %q", r.Name, ResourceUser)
	}
	if err := json.Unmarshal(r.Payload, &u); err != nil {
		return u, fmt.Errorf("decode user payload: %w", err)
	}
	return u, nil
}

func (r ResourceResult) Posts() ([]Post, error) {
	if r.Name != ResourcePosts {
		return nil, fmt.Errorf("result is %q, not %q", r.Name, ResourcePosts)
	}
	var ps []Post
	if err := json.Unmarshal(r.Payload, &ps); err != nil {
		return nil, fmt.Errorf("decode posts payload: %w", err)
	}
	return ps, nil
}

func (r ResourceResult) Todos() ([]Todo, error) {
	if r.Name != ResourceTodos {
		return nil, fmt.Errorf("result is %q, not %q", r.Name, ResourceTodos)
	}
	var ts []Todo
	if err := json.Unmarshal(r.Payload, &ts); err != nil {
		return nil, fmt.Errorf("decode todos payload: %w", err)
	}
	return ts, nil
}
