// Package scope defines the permission strings carried by OAuth clients and
// access tokens, and the registry every requested scope is validated against.
package scope

import (
	"slices"
	"strings"
)

// Scope is a single permission of the form "resource:action".
type Scope string

// String returns the scope as it appears on the wire.
func (s Scope) String() string { return string(s) }

// Resource returns the part before the colon, or the whole scope if there is none.
func (s Scope) Resource() string {
	r, _, _ := strings.Cut(string(s), ":")
	return r
}

// Action returns the part after the colon.
func (s Scope) Action() string {
	_, a, _ := strings.Cut(string(s), ":")
	return a
}

const (
	ConfigRead Scope = "config:read"

	ClientCreate Scope = "client:create"
	ClientDelete Scope = "client:delete"
	ClientRead   Scope = "client:read"
	ClientUpdate Scope = "client:update"

	ConnectionCreateOrUpdate Scope = "connection:create_or_update"
	ConnectionDelete         Scope = "connection:delete"
	ConnectionRead           Scope = "connection:read"

	DatasetCreateOrUpdate Scope = "dataset:create_or_update"
	DatasetDelete         Scope = "dataset:delete"
	DatasetRead           Scope = "dataset:read"

	EncryptionExec Scope = "encryption:exec"

	PolicyCreateOrUpdate Scope = "policy:create_or_update"
	PolicyDelete         Scope = "policy:delete"
	PolicyRead           Scope = "policy:read"

	// PrivacyRequestCallbackResume allows restarting a paused privacy request.
	PrivacyRequestCallbackResume Scope = "privacy-request:resume"
	PrivacyRequestDelete         Scope = "privacy-request:delete"
	PrivacyRequestRead           Scope = "privacy-request:read"
	PrivacyRequestReview         Scope = "privacy-request:review"

	RuleCreateOrUpdate Scope = "rule:create_or_update"
	RuleDelete         Scope = "rule:delete"
	RuleRead           Scope = "rule:read"

	SaaSConfigCreateOrUpdate Scope = "saas_config:create_or_update"
	SaaSConfigDelete         Scope = "saas_config:delete"
	SaaSConfigRead           Scope = "saas_config:read"

	ScopeRead Scope = "scope:read"

	StorageCreateOrUpdate Scope = "storage:create_or_update"
	StorageDelete         Scope = "storage:delete"
	StorageRead           Scope = "storage:read"

	UserCreate Scope = "user:create"
	UserDelete Scope = "user:delete"
	UserRead   Scope = "user:read"

	UserPermissionCreate Scope = "user-permission:create"
	UserPermissionUpdate Scope = "user-permission:update"
	UserPermissionRead   Scope = "user-permission:read"

	WebhookCreateOrUpdate Scope = "webhook:create_or_update"
	WebhookDelete         Scope = "webhook:delete"
	WebhookRead           Scope = "webhook:read"
)

// Docs documents every scope known to the default registry.
var Docs = map[Scope]string{
	ConfigRead:                   "View the configuration",
	ClientCreate:                 "Create OAuth clients",
	ClientDelete:                 "Remove OAuth clients",
	ClientRead:                   "View current scopes for OAuth clients",
	ClientUpdate:                 "Modify existing scopes for OAuth clients",
	ConnectionCreateOrUpdate:     "Create or modify connections",
	ConnectionDelete:             "Remove connections",
	ConnectionRead:               "View connections",
	DatasetCreateOrUpdate:        "Create or modify datasets",
	DatasetDelete:                "Delete datasets",
	DatasetRead:                  "View datasets",
	EncryptionExec:               "Encrypt data",
	PolicyCreateOrUpdate:         "Create or modify policies",
	PolicyDelete:                 "Remove policies",
	PolicyRead:                   "View policies",
	PrivacyRequestCallbackResume: "Restart paused privacy requests",
	PrivacyRequestDelete:         "Remove privacy requests",
	PrivacyRequestRead:           "View privacy requests",
	PrivacyRequestReview:         "Review privacy requests",
	RuleCreateOrUpdate:           "Create or update rules",
	RuleDelete:                   "Remove rules",
	RuleRead:                     "View rules",
	SaaSConfigCreateOrUpdate:     "Create or update SAAS configurations",
	SaaSConfigDelete:             "Remove SAAS configurations",
	SaaSConfigRead:               "View SAAS configurations",
	ScopeRead:                    "View authorization scopes",
	StorageCreateOrUpdate:        "Create or update storage",
	StorageDelete:                "Remove storage",
	StorageRead:                  "View storage",
	UserCreate:                   "Create users",
	UserDelete:                   "Remove users",
	UserRead:                     "View users",
	UserPermissionCreate:         "Create user permissions",
	UserPermissionUpdate:         "Update user permissions",
	UserPermissionRead:           "View user permissions",
	WebhookCreateOrUpdate:        "Create or update web hooks",
	WebhookDelete:                "Remove web hooks",
	WebhookRead:                  "View web hooks",
}

// FromStrings converts raw strings to scopes, dropping empties and duplicates
// while keeping the first-seen order.
func FromStrings(raw []string) []Scope {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Scope, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, Scope(r))
	}
	return out
}

// Strings converts scopes back to plain strings.
func Strings(scopes []Scope) []string {
	out := make([]string, len(scopes))
	for i, s := range scopes {
		out[i] = string(s)
	}
	return out
}

// Subset reports whether every scope in sub is present in super.
// The empty set is a subset of everything.
func Subset(sub, super []Scope) bool {
	have := make(map[Scope]struct{}, len(super))
	for _, s := range super {
		have[s] = struct{}{}
	}
	for _, s := range sub {
		if _, ok := have[s]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns a sorted copy of scopes.
func Sorted(scopes []Scope) []Scope {
	out := slices.Clone(scopes)
	slices.Sort(out)
	return out
}
