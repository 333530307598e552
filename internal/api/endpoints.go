package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

type credentials struct {
	NUID string `json:"nuid"`
	Name string `json:"name"`
}

// Login authenticates by NUID and full name and returns the stored profile.
func (c *Client) Login(ctx context.Context, nuid, name string) (*UserProfile, error) {
	var raw json.RawMessage
	if err := c.call(ctx, "login", http.MethodPost, "/auth/login", credentials{NUID: nuid, Name: name}, &raw); err != nil {
		return nil, err
	}
	var profile UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, &InvalidResponseError{Op: "login", Content: raw, Err: err}
	}
	profile.Raw = raw
	return &profile, nil
}

// CheckUser asks whether nuid is free to register. An existing user is
// reported as an *APIError carrying the server message.
func (c *Client) CheckUser(ctx context.Context, nuid, name string) error {
	return c.call(ctx, "check user", http.MethodPost, "/auth/check-user", credentials{NUID: nuid, Name: name}, nil)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.call(ctx, "register", http.MethodPost, "/auth/register", req, nil)
}

func (c *Client) CourseCatalog(ctx context.Context, nuid string) ([]Course, error) {
	var courses []Course
	if err := c.call(ctx, "course catalog", http.MethodGet, "/course-catalog/"+url.PathEscape(nuid), nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// BurnoutAnalysis returns the burnout snapshot. Unlike the other endpoints
// the body is not enveloped.
func (c *Client) BurnoutAnalysis(ctx context.Context, nuid string) (*BurnoutAnalysis, error) {
	var out BurnoutAnalysis
	if err := c.callBare(ctx, "burnout analysis", http.MethodGet, "/burnout-analysis/"+url.PathEscape(nuid), burnoutSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Progress(ctx context.Context, nuid string) (*Progress, error) {
	var out Progress
	if err := c.call(ctx, "progress", http.MethodGet, "/progress/"+url.PathEscape(nuid), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommendations returns next-semester suggestions.
func (c *Client) Recommendations(ctx context.Context, nuid string) (*NextSemester, error) {
	var out NextSemester
	if err := c.call(ctx, "recommendations", http.MethodGet, "/recommendations/"+url.PathEscape(nuid), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecommendFull requests the next offer of the iterative degree planner.
func (c *Client) RecommendFull(ctx context.Context, nuid string, selected, blacklisted []string) (*DegreeOffer, error) {
	body := RecommendFullRequest{
		SelectedCourses:    nonNil(selected),
		BlacklistedCourses: nonNil(blacklisted),
	}
	var out DegreeOffer
	if err := c.call(ctx, "recommend full", http.MethodPost, "/recommend-full/"+url.PathEscape(nuid), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveSchedule(ctx context.Context, nuid, name string, courses []string) error {
	body := SaveScheduleRequest{Name: name, Courses: nonNil(courses)}
	return c.call(ctx, "save schedule", http.MethodPost, "/save-schedule/"+url.PathEscape(nuid), body, nil)
}

func (c *Client) Schedules(ctx context.Context, nuid string) ([]Schedule, error) {
	var out []Schedule
	if err := c.call(ctx, "schedules", http.MethodGet, "/schedules/"+url.PathEscape(nuid), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteSchedule(ctx context.Context, nuid, name string) error {
	path := "/delete-schedule/" + url.PathEscape(nuid) + "/" + url.PathEscape(name)
	status, raw, err := c.send(ctx, "delete schedule", http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return statusError(status, raw)
	}
	// Only the status matters here, unless the body explicitly reports
	// failure.
	var env struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &env) == nil && env.Success != nil && !*env.Success {
		return &APIError{Status: status, Message: env.Message}
	}
	return nil
}

// Ping probes the backend root.
func (c *Client) Ping(ctx context.Context) (*RootInfo, error) {
	var out RootInfo
	if err := c.callBare(ctx, "ping", http.MethodGet, "/", rootSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
