package chat

import (
	"testing"

	"github.com/shopspring/decimal"

	"share_party_server/internal/dto/request"
	"share_party_server/internal/model"
	"share_party_server/internal/service/lifecycle"
	"share_party_server/internal/testkit"
	"share_party_server/pkg/errorx"
)

func TestChatMembership(t *testing.T) {
	repos := testkit.NewRepositories(t)
	owner := testkit.SeedUser(t, repos, "U_OWNER", "owner")
	member := testkit.SeedUser(t, repos, "U_MEMBER", "member")
	testkit.SeedUser(t, repos, "U_OTHER", "other")

	party := &model.Party{Title: "YouTube", Category: "APP", MemberLimit: 3, FullPrice: decimal.NewFromInt(300), OwnerId: owner.Uuid}
	if err := repos.Party.Create(party); err != nil {
		t.Fatal(err)
	}
	if err := repos.PartyMember.Create(&model.PartyMember{PartyId: party.Id, UserId: member.Uuid}); err != nil {
		t.Fatal(err)
	}

	svc := NewChatService(repos, testkit.NewStorage(t))
	ownerActor := lifecycle.Actor{UserId: owner.Uuid, Username: owner.Username}
	memberActor := lifecycle.Actor{UserId: member.Uuid, Username: member.Username}
	other := lifecycle.Actor{UserId: "U_OTHER", Username: "other"}

	if _, err := svc.SendMessage(ownerActor, party.Id, request.SendChatRequest{Message: "<b>hello</b>"}, nil); err != nil {
		t.Fatalf("owner send: %v", err)
	}
	sent, err := svc.SendMessage(memberActor, party.Id, request.SendChatRequest{}, testkit.FileHeader(t, "image", "receipt.png", testkit.PNG))
	if err != nil {
		t.Fatalf("member send image: %v", err)
	}
	if sent.Image == "" || !sent.IsMe {
		t.Fatalf("sent = %+v", sent)
	}
	rows, err := repos.ChatMessage.FindByPartyId(party.Id)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1].Message != "" || rows[1].Image == "" {
		t.Fatalf("stored rows = %+v", rows)
	}

	msgs, err := svc.GetMessages(memberActor, party.Id)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Message != "hello" || msgs[0].IsMe || msgs[0].Username != "owner" {
		t.Fatalf("first message = %+v", msgs[0])
	}
	if !msgs[1].IsMe {
		t.Fatal("member's own message should be marked")
	}

	if _, err := svc.GetMessages(other, party.Id); errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("outsider read err = %v", err)
	}
	if _, err := svc.SendMessage(other, party.Id, request.SendChatRequest{Message: "hi"}, nil); errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("outsider send err = %v", err)
	}
	for _, empty := range []string{"", "   ", "  <i></i> "} {
		if _, err := svc.SendMessage(memberActor, party.Id, request.SendChatRequest{Message: empty}, nil); errorx.GetCode(err) != errorx.CodeInvalidParam {
			t.Fatalf("empty message %q err = %v", empty, err)
		}
	}
	if rows, err = repos.ChatMessage.FindByPartyId(party.Id); err != nil || len(rows) != 2 {
		t.Fatalf("empty sends must not store rows, have %d (err %v)", len(rows), err)
	}
	if _, err := svc.GetMessages(memberActor, 999); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("missing party err = %v", err)
	}
}

func TestChatRejectsNonImage(t *testing.T) {
	repos := testkit.NewRepositories(t)
	owner := testkit.SeedUser(t, repos, "U_OWNER", "owner")
	party := &model.Party{Title: "Disney+", Category: "MOVIE", MemberLimit: 2, FullPrice: decimal.NewFromInt(100), OwnerId: owner.Uuid}
	if err := repos.Party.Create(party); err != nil {
		t.Fatal(err)
	}

	svc := NewChatService(repos, testkit.NewStorage(t))
	file := testkit.FileHeader(t, "image", "notes.txt", []byte("plain text, not an image"))
	_, err := svc.SendMessage(lifecycle.Actor{UserId: owner.Uuid}, party.Id, request.SendChatRequest{Message: "look"}, file)
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("err = %v, want invalid param", err)
	}
}

func TestChatKeepsPunctuation(t *testing.T) {
	repos := testkit.NewRepositories(t)
	owner := testkit.SeedUser(t, repos, "U_OWNER", "owner")
	party := &model.Party{Title: "Spotify", Category: "MUSIC", MemberLimit: 4, FullPrice: decimal.NewFromInt(200), OwnerId: owner.Uuid}
	if err := repos.Party.Create(party); err != nil {
		t.Fatal(err)
	}

	svc := NewChatService(repos, testkit.NewStorage(t))
	actor := lifecycle.Actor{UserId: owner.Uuid, Username: owner.Username}
	text := `Tom & Jerry, I'm paying 1 < 2 "now"`
	if _, err := svc.SendMessage(actor, party.Id, request.SendChatRequest{Message: text}, nil); err != nil {
		t.Fatal(err)
	}
	msgs, err := svc.GetMessages(actor, party.Id)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0].Message != text {
		t.Fatalf("messages = %+v, want %q", msgs, text)
	}
}
