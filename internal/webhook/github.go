package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GitHub event names carried in the X-GitHub-Event header.
const (
	EventPush    = "push"
	EventRelease = "release"
	EventPing    = "ping"
)

// Event is one classified delivery. The set of implementations is closed:
// PushEvent, ReleaseEvent, PingEvent and UnrecognizedEvent.
type Event interface {
	Name() string
	event()
}

// Repository identifies the repository a delivery is about.
type Repository struct {
	Name          string
	FullName      string
	Owner         string
	DefaultBranch string
}

// Commit lists the paths touched by one pushed commit.
type Commit struct {
	ID       string
	Message  string
	Added    []string
	Modified []string
}

type PushEvent struct {
	Ref        string
	Repository Repository
	Sender     string
	Commits    []Commit
}

type Release struct {
	TagName    string
	Name       string
	Draft      bool
	Prerelease bool
}

type ReleaseEvent struct {
	Action     string
	Repository Repository
	Sender     string
	Release    Release
}

type PingEvent struct {
	Zen        string
	HookID     int64
	Repository Repository
}

// UnrecognizedEvent is any event name the gateway does not act on.
type UnrecognizedEvent struct {
	EventName string
}

func (PushEvent) Name() string           { return EventPush }
func (ReleaseEvent) Name() string        { return EventRelease }
func (PingEvent) Name() string           { return EventPing }
func (e UnrecognizedEvent) Name() string { return e.EventName }

func (PushEvent) event()         {}
func (ReleaseEvent) event()      {}
func (PingEvent) event()         {}
func (UnrecognizedEvent) event() {}

// githubPayload is the subset of GitHub's webhook JSON the gateway reads.
type githubPayload struct {
	Action     string `json:"action"`
	Ref        string `json:"ref"`
	Zen        string `json:"zen"`
	HookID     int64  `json:"hook_id"`
	Repository struct {
		Name          string `json:"name"`
		FullName      string `json:"full_name"`
		DefaultBranch string `json:"default_branch"`
		Owner         struct {
			Login string `json:"login"`
			Name  string `json:"name"`
		} `json:"owner"`
	} `json:"repository"`
	Sender struct {
		Login string `json:"login"`
	} `json:"sender"`
	Commits []struct {
		ID       string   `json:"id"`
		Message  string   `json:"message"`
		Added    []string `json:"added"`
		Modified []string `json:"modified"`
	} `json:"commits"`
	Release *struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
	} `json:"release"`
}

// ParseEvent classifies a delivery by its event header and decodes the body.
// Any malformed body, whatever the event, is ErrInvalidPayload.
func ParseEvent(eventType string, body []byte) (Event, error) {
	var p githubPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	repo := p.repository()

	switch eventType {
	case EventPush:
		if err := requireRepository(repo); err != nil {
			return nil, err
		}
		commits := make([]Commit, 0, len(p.Commits))
		for _, c := range p.Commits {
			commits = append(commits, Commit{
				ID:       c.ID,
				Message:  c.Message,
				Added:    c.Added,
				Modified: c.Modified,
			})
		}
		return PushEvent{
			Ref:        p.Ref,
			Repository: repo,
			Sender:     p.Sender.Login,
			Commits:    commits,
		}, nil

	case EventRelease:
		if err := requireRepository(repo); err != nil {
			return nil, err
		}
		if p.Release == nil {
			return nil, fmt.Errorf("%w: release object is missing", ErrInvalidPayload)
		}
		return ReleaseEvent{
			Action:     p.Action,
			Repository: repo,
			Sender:     p.Sender.Login,
			Release: Release{
				TagName:    p.Release.TagName,
				Name:       p.Release.Name,
				Draft:      p.Release.Draft,
				Prerelease: p.Release.Prerelease,
			},
		}, nil

	case EventPing:
		return PingEvent{Zen: p.Zen, HookID: p.HookID, Repository: repo}, nil

	default:
		return UnrecognizedEvent{EventName: eventType}, nil
	}
}

// repository normalises owner: push payloads carry owner.name, others owner.login.
func (p *githubPayload) repository() Repository {
	owner := p.Repository.Owner.Login
	if owner == "" {
		owner = p.Repository.Owner.Name
	}
	if owner == "" {
		owner, _, _ = strings.Cut(p.Repository.FullName, "/")
	}
	return Repository{
		Name:          p.Repository.Name,
		FullName:      p.Repository.FullName,
		Owner:         owner,
		DefaultBranch: p.Repository.DefaultBranch,
	}
}

func requireRepository(r Repository) error {
	if r.Owner == "" || r.Name == "" {
		return fmt.Errorf("%w: repository owner and name are required", ErrInvalidPayload)
	}
	return nil
}
