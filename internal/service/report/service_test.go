package report

import (
	"testing"

	"share_party_server/internal/dto/request"
	"share_party_server/internal/service/lifecycle"
	"share_party_server/internal/testkit"
	"share_party_server/pkg/enum/report/report_status_enum"
	"share_party_server/pkg/errorx"
)

var (
	reporter = lifecycle.Actor{UserId: "U_REPORTER", Username: "reporter"}
	other    = lifecycle.Actor{UserId: "U_OTHER", Username: "other"}
	admin    = lifecycle.Actor{UserId: "U_ADMIN", Username: "admin", IsStaff: true}
)

func newService(t *testing.T) *reportService {
	t.Helper()
	return NewReportService(testkit.NewRepositories(t), testkit.NewStorage(t))
}

func TestCreateReport(t *testing.T) {
	svc := newService(t)

	rsp, err := svc.Create(reporter, request.CreateReportRequest{
		Category:    "SCAM",
		Title:       "<b>Never paid</b>",
		Description: `<p onclick="x()">member left without paying</p>`,
	}, testkit.FileHeader(t, "evidence_image", "proof.png", testkit.PNG))
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Status != report_status_enum.PENDING || rsp.Title != "Never paid" || rsp.EvidenceImage == "" {
		t.Fatalf("report = %+v", rsp)
	}
	if rsp.Description != "<p>member left without paying</p>" {
		t.Fatalf("description = %q", rsp.Description)
	}

	tests := []struct {
		name string
		req  request.CreateReportRequest
	}{
		{"unknown category", request.CreateReportRequest{Category: "SPAM", Title: "x"}},
		{"empty title after sanitize", request.CreateReportRequest{Category: "BUG", Title: "<i></i>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(reporter, tt.req, nil); errorx.GetCode(err) != errorx.CodeInvalidParam {
				t.Fatalf("err = %v, want invalid param", err)
			}
		})
	}
}

func TestReportVisibility(t *testing.T) {
	svc := newService(t)
	r, err := svc.Create(reporter, request.CreateReportRequest{Category: "BUG", Title: "QR broken"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Detail(reporter, r.Id); err != nil {
		t.Fatalf("reporter detail: %v", err)
	}
	if _, err := svc.Detail(admin, r.Id); err != nil {
		t.Fatalf("staff detail: %v", err)
	}
	if _, err := svc.Detail(other, r.Id); errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("other detail err = %v", err)
	}
	if _, err := svc.Detail(admin, 999); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("missing err = %v", err)
	}

	mine, _ := svc.ListMine(reporter)
	if len(mine) != 1 {
		t.Fatalf("mine = %d", len(mine))
	}
	if theirs, _ := svc.ListMine(other); len(theirs) != 0 {
		t.Fatalf("other sees %d reports", len(theirs))
	}
}

func TestAdminWorkflow(t *testing.T) {
	svc := newService(t)
	first, _ := svc.Create(reporter, request.CreateReportRequest{Category: "USER", Title: "rude"}, nil)
	second, _ := svc.Create(other, request.CreateReportRequest{Category: "OTHER", Title: "question"}, nil)

	if _, err := svc.UpdateStatus(first.Id, "DONE"); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("bad status err = %v", err)
	}
	if _, err := svc.UpdateStatus(999, report_status_enum.ACKNOWLEDGED); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("missing report err = %v", err)
	}
	got, err := svc.UpdateStatus(first.Id, report_status_enum.ACKNOWLEDGED)
	if err != nil || got.Status != report_status_enum.ACKNOWLEDGED {
		t.Fatalf("update = %+v, %v", got, err)
	}

	resolved, err := svc.Resolve(second.Id, "answered by email")
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Status != report_status_enum.RESOLVED || resolved.ResolutionNote != "answered by email" {
		t.Fatalf("resolved = %+v", resolved)
	}

	list, err := svc.AdminList(request.ListReportRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if list.Total != 2 {
		t.Fatalf("total = %d", list.Total)
	}
	want := map[string]int64{
		report_status_enum.PENDING:      0,
		report_status_enum.ACKNOWLEDGED: 1,
		report_status_enum.RESOLVED:     1,
		report_status_enum.REJECTED:     0,
	}
	for k, v := range want {
		if list.StatusCounts[k] != v {
			t.Fatalf("count[%s] = %d, want %d", k, list.StatusCounts[k], v)
		}
	}

	filtered, _ := svc.AdminList(request.ListReportRequest{Status: report_status_enum.RESOLVED})
	if filtered.Total != 1 || filtered.Reports[0].Id != second.Id {
		t.Fatalf("filtered = %+v", filtered)
	}
	if _, err := svc.AdminList(request.ListReportRequest{Status: "NOPE"}); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("bad filter err = %v", err)
	}
}
