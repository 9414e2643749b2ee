package todosdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const sessionCookie = "authToken"

// Session is a cookie-carrying client, the SDK's stand-in for a browser tab.
// It is safe for concurrent use.
type Session struct {
	client *SDKClient
	base   *url.URL
	http   *http.Client
}

// Token returns the session token currently held in the cookie jar.
func (s *Session) Token() string {
	for _, c := range s.http.Jar.Cookies(s.base) {
		if c.Name == sessionCookie {
			return c.Value
		}
	}
	return ""
}

// SetToken replaces the session token, e.g. to reuse one from another session.
func (s *Session) SetToken(token string) {
	s.http.Jar.SetCookies(s.base, []*http.Cookie{{Name: sessionCookie, Value: token, Path: "/"}})
}

// SetCookie plants an arbitrary cookie in the jar.
func (s *Session) SetCookie(name, value string) {
	s.http.Jar.SetCookies(s.base, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
}

// Cookies lists the cookies the service has set for this session.
func (s *Session) Cookies() []*http.Cookie {
	return s.http.Jar.Cookies(s.base)
}

func (s *Session) Register(ctx context.Context, username, password, confirmPassword string) error {
	page, err := s.submit(ctx, "/register", url.Values{
		"username":        {username},
		"password":        {password},
		"confirmPassword": {confirmPassword},
	})
	if err != nil {
		return err
	}
	return formResult(page)
}

func (s *Session) Login(ctx context.Context, username, password string) error {
	page, err := s.submit(ctx, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		return err
	}
	return formResult(page)
}

// Logout ends the session on the server and drops the cookie.
func (s *Session) Logout(ctx context.Context) error {
	page, err := s.get(ctx, "/logout")
	if err != nil {
		return err
	}
	if page.Path != "/login" {
		return &StatusError{StatusCode: page.StatusCode, Body: "logout did not land on /login"}
	}
	return nil
}

// Home fetches the task list.
func (s *Session) Home(ctx context.Context) (*Page, error) {
	return signedIn(s.get(ctx, "/"))
}

// AddTask appends a task and returns the refreshed list.
func (s *Session) AddTask(ctx context.Context, description string) (*Page, error) {
	return signedIn(s.submit(ctx, "/add_task", url.Values{"tasks": {description}}))
}

// CompleteTask marks a task done and returns the refreshed list.
func (s *Session) CompleteTask(ctx context.Context, taskID string) (*Page, error) {
	return signedIn(s.submit(ctx, "/complete_task", url.Values{"task_id": {taskID}}))
}

// RemoveCompletedTasks purges finished tasks and returns the refreshed list.
func (s *Session) RemoveCompletedTasks(ctx context.Context) (*Page, error) {
	return signedIn(s.submit(ctx, "/remove_completed_tasks", url.Values{}))
}

func (s *Session) get(ctx context.Context, path string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return s.do(req)
}

func (s *Session) submit(ctx context.Context, path string, form url.Values) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.url(path), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *Session) do(req *http.Request) (*Page, error) {
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	return parsePage(resp)
}

// formResult turns a login or register response into an error unless it
// redirected to the task list.
func formResult(page *Page) error {
	if page.Path == "/" && page.StatusCode == http.StatusOK {
		return nil
	}
	return &FormError{StatusCode: page.StatusCode, Message: page.Error}
}

func signedIn(page *Page, err error) (*Page, error) {
	if err != nil {
		return nil, err
	}
	if page.Path == "/login" {
		return nil, ErrNotSignedIn
	}
	if page.StatusCode >= http.StatusBadRequest {
		return page, &StatusError{StatusCode: page.StatusCode, Body: page.Error}
	}
	return page, nil
}
