package repository_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"share_party_server/internal/dao/database/repository"
	"share_party_server/internal/model"
	"share_party_server/internal/testkit"
	"share_party_server/pkg/errorx"
)

func createParty(t *testing.T, repos *repository.Repositories, owner, title, category string, limit int) *model.Party {
	t.Helper()
	p := &model.Party{Title: title, Category: category, MemberLimit: limit, FullPrice: decimal.NewFromInt(100), OwnerId: owner}
	if err := repos.Party.Create(p); err != nil {
		t.Fatal(err)
	}
	if err := repos.PartyMember.Create(&model.PartyMember{PartyId: p.Id, UserId: owner}); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNotFoundIsWrapped(t *testing.T) {
	repos := testkit.NewRepositories(t)

	if _, err := repos.User.FindByUuid("U_NOBODY"); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("user err = %v", err)
	}
	if _, err := repos.Party.FindWithCount(42); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("party err = %v", err)
	}
	if _, err := repos.Report.FindById(42); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("report err = %v", err)
	}
}

func TestCreateIfAbsent(t *testing.T) {
	repos := testkit.NewRepositories(t)
	p := createParty(t, repos, "U_OWNER", "Netflix", "MOVIE", 4)

	created, err := repos.JoinRequest.CreateIfAbsent(&model.JoinRequest{PartyId: p.Id, UserId: "U_A", Status: "PENDING"})
	if err != nil || !created {
		t.Fatalf("first insert = %v, %v", created, err)
	}
	created, err = repos.JoinRequest.CreateIfAbsent(&model.JoinRequest{PartyId: p.Id, UserId: "U_A", Status: "PENDING"})
	if err != nil || created {
		t.Fatalf("duplicate insert = %v, %v", created, err)
	}
}

func TestPartyListFilters(t *testing.T) {
	repos := testkit.NewRepositories(t)
	full := createParty(t, repos, "U_OWNER", "Netflix Family", "MOVIE", 1)
	createParty(t, repos, "U_OWNER", "Spotify Duo", "MUSIC", 2)
	createParty(t, repos, "U_OTHER", "Steam deal", "GAME", 3)

	tests := []struct {
		name   string
		filter repository.PartyFilter
		want   int64
	}{
		{"all", repository.PartyFilter{}, 3},
		{"keyword is case insensitive", repository.PartyFilter{Keyword: "NETFLIX"}, 1},
		{"keyword with category", repository.PartyFilter{Keyword: "s", Category: "GAME"}, 1},
		{"full", repository.PartyFilter{Status: "full"}, 1},
		{"available", repository.PartyFilter{Status: "available"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, total, err := repos.Party.List(tt.filter, 0, 10)
			if err != nil {
				t.Fatal(err)
			}
			if total != tt.want || int64(len(list)) != tt.want {
				t.Fatalf("total = %d, len = %d, want %d", total, len(list), tt.want)
			}
		})
	}

	list, _, _ := repos.Party.List(repository.PartyFilter{Status: "full"}, 0, 10)
	if list[0].Id != full.Id || list[0].MemberCount != 1 {
		t.Fatalf("full party = %+v", list[0])
	}
}

func TestJoinedExcludesOwned(t *testing.T) {
	repos := testkit.NewRepositories(t)
	mine := createParty(t, repos, "U_A", "mine", "APP", 3)
	theirs := createParty(t, repos, "U_B", "theirs", "APP", 3)
	if err := repos.PartyMember.Create(&model.PartyMember{PartyId: theirs.Id, UserId: "U_A"}); err != nil {
		t.Fatal(err)
	}

	owned, _ := repos.Party.FindByOwnerId("U_A")
	joined, _ := repos.Party.FindJoinedBy("U_A")
	if len(owned) != 1 || owned[0].Id != mine.Id {
		t.Fatalf("owned = %+v", owned)
	}
	if len(joined) != 1 || joined[0].Id != theirs.Id || joined[0].MemberCount != 2 {
		t.Fatalf("joined = %+v", joined)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	repos := testkit.NewRepositories(t)
	p := createParty(t, repos, "U_OWNER", "rollback", "APP", 3)

	err := repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.PartyMember.Create(&model.PartyMember{PartyId: p.Id, UserId: "U_A"}); err != nil {
			return err
		}
		return errorx.ErrPartyFull
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if n, _ := repos.PartyMember.CountByPartyId(p.Id); n != 1 {
		t.Fatalf("member count = %d, insert should be rolled back", n)
	}
}
