// Package policy holds the role-permission matrix for content and moderation actions.
package policy

import (
	"fmt"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
)

// Action is something an actor attempts on a resource
type Action string

const (
	ActionVote            Action = "vote"
	ActionEdit            Action = "edit"
	ActionDelete          Action = "delete"
	ActionAcceptAnswer    Action = "accept_answer"
	ActionMarkBestAnswer  Action = "mark_best_answer"
	ActionAskQuestion     Action = "ask_question"
	ActionAnswerQuestion  Action = "answer_question"
	ActionModerate        Action = "moderate"
	ActionManageCourse    Action = "manage_course"
	ActionManageRoles     Action = "manage_roles"
	ActionResolveQuestion Action = "resolve_question"
)

// Request describes an authorization decision.
//
// OwnerID/OwnerRole refer to the resource owner: the content author for
// content actions, the question author for accept/answer/resolve, the course
// assignee for manage_course (0 when unassigned) and the target profile for
// manage_roles.
type Request struct {
	Action    Action
	ActorID   uint64
	ActorRole domain.Role
	OwnerID   uint64
	OwnerRole domain.Role
}

// Denied is returned when a request is not allowed. It wraps common.ErrForbidden.
type Denied struct {
	Action  Action
	Message string
}

func (d *Denied) Error() string { return d.Message }

func (d *Denied) Unwrap() error { return common.ErrForbidden }

func deny(a Action, msg string) error {
	return &Denied{Action: a, Message: msg}
}

// Check returns nil when the request is allowed
func Check(r Request) error {
	if r.ActorID == 0 {
		return deny(r.Action, "please log in to continue")
	}
	actorStaff := r.ActorRole.IsStaff()
	ownerStaff := r.OwnerRole.IsStaff()
	own := r.ActorID == r.OwnerID

	switch r.Action {
	case ActionVote:
		switch {
		case own:
			return deny(r.Action, "you cannot vote on your own content")
		case !actorStaff && ownerStaff:
			return deny(r.Action, "students cannot vote on content posted by admins")
		case actorStaff && ownerStaff:
			return deny(r.Action, "admins cannot vote on content posted by other admins")
		}
		return nil

	case ActionEdit, ActionDelete:
		switch {
		case own, r.ActorRole == domain.RoleSuperAdmin:
			return nil
		case r.ActorRole == domain.RoleAdmin && !ownerStaff:
			return nil
		}
		return deny(r.Action, fmt.Sprintf("you are not allowed to %s this content", r.Action))

	case ActionAcceptAnswer:
		if own || actorStaff {
			return nil
		}
		return deny(r.Action, "only the question author or an admin can accept an answer")

	case ActionMarkBestAnswer:
		if !actorStaff {
			return deny(r.Action, "only admins can mark a best answer")
		}
		if ownerStaff {
			return deny(r.Action, "only answers written by students can be marked as best")
		}
		return nil

	case ActionAskQuestion:
		if actorStaff {
			return deny(r.Action, "admins cannot post questions")
		}
		return nil

	case ActionAnswerQuestion:
		if own {
			return deny(r.Action, "you cannot answer your own question")
		}
		return nil

	case ActionModerate:
		if actorStaff {
			return nil
		}
		return deny(r.Action, "admin access required")

	case ActionManageCourse:
		switch {
		case r.ActorRole == domain.RoleSuperAdmin:
			return nil
		case r.ActorRole == domain.RoleAdmin && (r.OwnerID == 0 || own):
			return nil
		case r.ActorRole == domain.RoleAdmin:
			return deny(r.Action, "this course is assigned to another admin")
		}
		return deny(r.Action, "admin access required")

	case ActionManageRoles:
		if r.ActorRole != domain.RoleSuperAdmin {
			return deny(r.Action, "superadmin access required")
		}
		if own {
			return deny(r.Action, "you cannot change your own role")
		}
		return nil

	case ActionResolveQuestion:
		if own || actorStaff {
			return nil
		}
		return deny(r.Action, "only the question author or an admin can resolve a question")
	}

	return deny(r.Action, fmt.Sprintf("unknown action %q", r.Action))
}

// Allowed is Check as a boolean
func Allowed(r Request) bool {
	return Check(r) == nil
}
