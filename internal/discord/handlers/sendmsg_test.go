package handlers

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keyshopvn/qr-payment-bot/internal/config"
)

const testLogChannelID = "log-channel-9"

func testSendMessageHandler() *SendMessageHandler {
	return NewSendMessageHandler(config.ShopConfig{
		CustomerRoleID: testRoleID,
		LogChannelID:   testLogChannelID,
	})
}

func testRequest(raw string) sendMessageRequest {
	return sendMessageRequest{
		guildID:     testGuildID,
		sender:      &discordgo.User{ID: "op-1", Username: "operator"},
		target:      &discordgo.User{ID: testUserID, Username: "customer"},
		targetRoles: []string{"role-7"},
		raw:         raw,
		receivedAt:  time.Date(2025, 2, 4, 10, 30, 0, 0, time.UTC),
	}
}

func TestSendMessageHandler_DeliversAndLogs(t *testing.T) {
	h := testSendMessageHandler()
	r := &fakeResponder{}
	rm := &fakeRoleManager{roles: customerRole()}
	dm := &fakeDirectMessenger{}
	logs := &fakeChannelSender{}

	h.handle(r, rm, dm, logs, testRequest("a - 1\nb - 2"))

	if r.deferCount != 1 || !r.deferEphemeral {
		t.Fatalf("defer count = %d ephemeral = %v, want one ephemeral defer", r.deferCount, r.deferEphemeral)
	}
	if len(rm.grants) != 1 {
		t.Errorf("grants = %v, want the customer role granted once", rm.grants)
	}

	if len(dm.sent) != 1 {
		t.Fatalf("DMs sent = %d, want 1", len(dm.sent))
	}
	dmEmbed := dm.sent[0]
	if !strings.Contains(dmEmbed.Description, "`2 key`") {
		t.Errorf("DM description %q is missing the key count", dmEmbed.Description)
	}
	if !strings.Contains(dmEmbed.Description, "a - 1\nb - 2") {
		t.Errorf("DM description %q is missing the credential block", dmEmbed.Description)
	}

	if len(logs.embeds) != 1 || logs.channels[0] != testLogChannelID {
		t.Fatalf("audit log = %v -> %v, want one embed to the log channel", logs.channels, logs.embeds)
	}
	audit := logs.embeds[0]
	if audit.Timestamp != "2025-02-04T10:30:00Z" {
		t.Errorf("audit timestamp = %q, want interaction receipt time", audit.Timestamp)
	}
	var fieldNames []string
	for _, f := range audit.Fields {
		fieldNames = append(fieldNames, f.Name)
	}
	for _, want := range []string{"Người gửi", "Người nhận", "Số lượng key", "Danh sách key"} {
		found := false
		for _, name := range fieldNames {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("audit fields %v are missing %q", fieldNames, want)
		}
	}

	contents := r.followUpContents()
	if len(contents) != 1 || !strings.Contains(contents[0], "✅") {
		t.Fatalf("follow-ups = %v, want a single confirmation", contents)
	}
	if !strings.Contains(contents[0], "customer") {
		t.Errorf("confirmation %q is missing the recipient name", contents[0])
	}
}

func TestSendMessageHandler_WarnsOnLineCountMismatch(t *testing.T) {
	h := testSendMessageHandler()
	r := &fakeResponder{}
	rm := &fakeRoleManager{roles: customerRole()}
	dm := &fakeDirectMessenger{}
	logs := &fakeChannelSender{}

	h.handle(r, rm, dm, logs, testRequest("a - 1\n\nb - 2\n  \nc - 3"))

	contents := r.followUpContents()
	if len(contents) != 2 {
		t.Fatalf("follow-ups = %v, want warning plus confirmation", contents)
	}
	if !strings.Contains(contents[0], "Đã xử lý 3 key") {
		t.Errorf("warning %q should state the processed count", contents[0])
	}
	if len(dm.sent) != 1 {
		t.Error("the warning must not block delivery")
	}
	if len(logs.embeds) != 1 {
		t.Error("the warning must not block the audit log")
	}
}

func TestSendMessageHandler_StopsWhenRoleGrantFails(t *testing.T) {
	h := testSendMessageHandler()
	r := &fakeResponder{}
	rm := &fakeRoleManager{rolesErr: errors.New("missing permissions")}
	dm := &fakeDirectMessenger{}
	logs := &fakeChannelSender{}

	h.handle(r, rm, dm, logs, testRequest("a - 1"))

	contents := r.followUpContents()
	if len(contents) != 1 || !strings.Contains(contents[0], "Không thể thêm role") {
		t.Fatalf("follow-ups = %v, want only the role failure message", contents)
	}
	if len(dm.sent) != 0 {
		t.Error("no DM may be sent when the role grant fails")
	}
	if len(logs.embeds) != 0 {
		t.Error("no audit log may be written when the role grant fails")
	}
}

func TestSendMessageHandler_ForbiddenDMSkipsAuditLog(t *testing.T) {
	h := testSendMessageHandler()
	r := &fakeResponder{}
	rm := &fakeRoleManager{roles: customerRole()}
	dm := &fakeDirectMessenger{status: DeliveryForbidden}
	logs := &fakeChannelSender{}

	h.handle(r, rm, dm, logs, testRequest("a - 1"))

	contents := r.followUpContents()
	if len(contents) != 1 {
		t.Fatalf("follow-ups = %v, want only the forbidden notice", contents)
	}
	if !strings.Contains(contents[0], "chặn DM") {
		t.Errorf("message %q should name the blocked-DM condition", contents[0])
	}
	if strings.Contains(contents[0], "Có lỗi xảy ra") {
		t.Errorf("message %q must be the specific notice, not the generic failure", contents[0])
	}
	if len(logs.embeds) != 0 {
		t.Error("no audit log may be written when the DM is forbidden")
	}
}

func TestSendMessageHandler_GenericDMFailure(t *testing.T) {
	h := testSendMessageHandler()
	r := &fakeResponder{}
	rm := &fakeRoleManager{roles: customerRole()}
	dm := &fakeDirectMessenger{status: DeliveryFailed}
	logs := &fakeChannelSender{}

	h.handle(r, rm, dm, logs, testRequest("a - 1"))

	contents := r.followUpContents()
	if len(contents) != 1 || !strings.Contains(contents[0], "Có lỗi xảy ra khi gửi tin nhắn") {
		t.Fatalf("follow-ups = %v, want the generic DM failure", contents)
	}
	if len(logs.embeds) != 0 {
		t.Error("no audit log may be written when the DM fails")
	}
}

func TestSendMessageHandler_LogChannelFailureDoesNotFailCommand(t *testing.T) {
	h := testSendMessageHandler()
	r := &fakeResponder{}
	rm := &fakeRoleManager{roles: customerRole()}
	dm := &fakeDirectMessenger{}
	logs := &fakeChannelSender{err: errors.New("unknown channel")}

	h.handle(r, rm, dm, logs, testRequest("a - 1"))

	contents := r.followUpContents()
	if len(contents) != 1 || !strings.Contains(contents[0], "✅") {
		t.Fatalf("follow-ups = %v, want the confirmation despite the log failure", contents)
	}
}
