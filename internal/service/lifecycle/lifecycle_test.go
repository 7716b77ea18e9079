package lifecycle

import (
	"errors"
	"testing"

	"share_party_server/pkg/enum/join_request/join_status_enum"
	"share_party_server/pkg/errorx"
)

var (
	owner    = Actor{UserId: "U_OWNER", Username: "owner"}
	joiner   = Actor{UserId: "U_JOINER", Username: "joiner"}
	staff    = Actor{UserId: "U_STAFF", Username: "staff", IsStaff: true}
	stranger = Actor{UserId: "U_STRANGER", Username: "stranger"}
	party    = PartyView{Id: 7, OwnerId: "U_OWNER", Title: "Netflix", MemberLimit: 2}
)

func kinds(p Plan) []EffectKind {
	out := make([]EffectKind, 0, len(p.Effects))
	for _, e := range p.Effects {
		out = append(out, e.Kind)
	}
	return out
}

func sameKinds(t *testing.T, got Plan, want ...EffectKind) {
	t.Helper()
	k := kinds(got)
	if len(k) != len(want) {
		t.Fatalf("effects = %v, want %v", k, want)
	}
	for i := range k {
		if k[i] != want[i] {
			t.Fatalf("effects = %v, want %v", k, want)
		}
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		got  Decision
		want bool
	}{
		{"owner manages", CanManage(owner, party), true},
		{"staff cannot manage", CanManage(staff, party), false},
		{"anonymous cannot manage", CanManage(Actor{}, party), false},
		{"owner edits", CanEdit(owner, party), true},
		{"staff edits", CanEdit(staff, party), true},
		{"stranger cannot edit", CanEdit(stranger, party), false},
		{"owner chats without membership row", CanChat(owner, party, false), true},
		{"member chats", CanChat(joiner, party, true), true},
		{"stranger cannot chat", CanChat(stranger, party, false), false},
		{"member leaves", CanLeave(joiner, party, true), true},
		{"owner cannot leave", CanLeave(owner, party, true), false},
		{"non member cannot leave", CanLeave(stranger, party, false), false},
		{"staff flag", IsStaff(staff), true},
		{"superuser counts as staff", IsStaff(Actor{UserId: "U_ROOT", IsSuperuser: true}), true},
		{"normal user is not staff", IsStaff(joiner), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Allowed != tt.want {
				t.Fatalf("Allowed = %v, want %v", tt.got.Allowed, tt.want)
			}
			if tt.want && tt.got.Err() != nil {
				t.Fatalf("Err() = %v, want nil", tt.got.Err())
			}
			if !tt.want && tt.got.Err() == nil {
				t.Fatal("Err() = nil, want error")
			}
		})
	}
}

func TestCanLeaveIsValidationError(t *testing.T) {
	err := CanLeave(owner, party, true).Err()
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("code = %d, want %d", errorx.GetCode(err), errorx.CodeInvalidParam)
	}
	err = CanChat(stranger, party, false).Err()
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("code = %d, want %d", errorx.GetCode(err), errorx.CodeForbidden)
	}
}

func TestPlanRequestJoin(t *testing.T) {
	if p := PlanRequestJoin(owner, party); !p.IsEmpty() {
		t.Fatalf("owner request should be a no-op, got %v", kinds(p))
	}

	p := PlanRequestJoin(joiner, party)
	sameKinds(t, p, CreateJoinRequest, Notify)
	if p.Event != EventJoinRequested {
		t.Fatalf("event = %s", p.Event)
	}
	if p.Effects[0].Status != join_status_enum.PENDING {
		t.Fatalf("initial status = %s", p.Effects[0].Status)
	}
	note := p.Effects[1]
	if !note.OnlyIfCreated {
		t.Fatal("owner notification must only fire for a new request")
	}
	if note.Note.RecipientId != owner.UserId || note.Note.SenderId != joiner.UserId {
		t.Fatalf("notification routed to %s from %s", note.Note.RecipientId, note.Note.SenderId)
	}
	if note.Note.Link != "/post/7" {
		t.Fatalf("link = %s", note.Note.Link)
	}
}

func TestPlanManageJoinRequest(t *testing.T) {
	pending := JoinState{Id: 1, PartyId: 7, UserId: joiner.UserId, Status: join_status_enum.PENDING}

	t.Run("approve", func(t *testing.T) {
		p, err := PlanManageJoinRequest(owner, party, pending, "approve", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sameKinds(t, p, SetJoinStatus, AddMember, Notify)
		if p.Effects[0].Status != join_status_enum.APPROVED {
			t.Fatalf("status = %s", p.Effects[0].Status)
		}
		if p.Effects[2].Note.RecipientId != joiner.UserId {
			t.Fatalf("notification recipient = %s", p.Effects[2].Note.RecipientId)
		}
	})

	t.Run("reject", func(t *testing.T) {
		p, err := PlanManageJoinRequest(owner, party, pending, "reject", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sameKinds(t, p, SetJoinStatus, Notify)
		if p.Event != EventJoinRejected {
			t.Fatalf("event = %s", p.Event)
		}
	})

	t.Run("approve at capacity", func(t *testing.T) {
		_, err := PlanManageJoinRequest(owner, party, pending, "approve", 2)
		if !errors.Is(err, errorx.ErrPartyFull) {
			t.Fatalf("err = %v, want party full", err)
		}
	})

	t.Run("not owner", func(t *testing.T) {
		_, err := PlanManageJoinRequest(staff, party, pending, "approve", 0)
		if errorx.GetCode(err) != errorx.CodeForbidden {
			t.Fatalf("err = %v, want forbidden", err)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := PlanManageJoinRequest(owner, party, pending, "maybe", 0)
		if errorx.GetCode(err) != errorx.CodeInvalidParam {
			t.Fatalf("err = %v, want invalid param", err)
		}
	})

	t.Run("request from another party", func(t *testing.T) {
		other := pending
		other.PartyId = 8
		_, err := PlanManageJoinRequest(owner, party, other, "approve", 0)
		if errorx.GetCode(err) != errorx.CodeNotFound {
			t.Fatalf("err = %v, want not found", err)
		}
	})

	t.Run("rejected can be approved later", func(t *testing.T) {
		rejected := pending
		rejected.Status = join_status_enum.REJECTED
		if _, err := PlanManageJoinRequest(owner, party, rejected, "approve", 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := PlanManageJoinRequest(owner, party, rejected, "reject", 1)
		if !errors.Is(err, errorx.ErrInvalidTransition) {
			t.Fatalf("err = %v, want invalid transition", err)
		}
	})

	t.Run("approved is final", func(t *testing.T) {
		approved := pending
		approved.Status = join_status_enum.APPROVED
		for _, action := range []string{"approve", "reject"} {
			_, err := PlanManageJoinRequest(owner, party, approved, action, 0)
			if !errors.Is(err, errorx.ErrInvalidTransition) {
				t.Fatalf("%s: err = %v, want invalid transition", action, err)
			}
		}
	})
}

func TestPlanKickMember(t *testing.T) {
	p, err := PlanKickMember(owner, party, joiner.UserId, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sameKinds(t, p, RemoveMember, DeleteJoinRequest, Notify)
	if p.Effects[2].Note.Link != HomeLink {
		t.Fatalf("kick notification link = %s", p.Effects[2].Note.Link)
	}

	if _, err := PlanKickMember(joiner, party, stranger.UserId, true); errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("err = %v, want forbidden", err)
	}
	if _, err := PlanKickMember(owner, party, owner.UserId, true); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("err = %v, want invalid param", err)
	}
	if _, err := PlanKickMember(owner, party, stranger.UserId, false); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("err = %v, want invalid param", err)
	}
}

func TestPlanLeaveParty(t *testing.T) {
	p, err := PlanLeaveParty(joiner, party, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sameKinds(t, p, RemoveMember, DeleteJoinRequest, Notify)
	if p.Effects[2].Note.RecipientId != owner.UserId {
		t.Fatalf("leave notification recipient = %s", p.Effects[2].Note.RecipientId)
	}

	if _, err := PlanLeaveParty(owner, party, true); err == nil {
		t.Fatal("owner must not be able to leave")
	}
	if _, err := PlanLeaveParty(stranger, party, false); err == nil {
		t.Fatal("non member must not be able to leave")
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{join_status_enum.PENDING, join_status_enum.APPROVED, true},
		{join_status_enum.PENDING, join_status_enum.REJECTED, true},
		{join_status_enum.REJECTED, join_status_enum.APPROVED, true},
		{join_status_enum.REJECTED, join_status_enum.REJECTED, false},
		{join_status_enum.APPROVED, join_status_enum.REJECTED, false},
		{join_status_enum.APPROVED, join_status_enum.APPROVED, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
