package logic

import (
	"errors"
	"testing"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
)

func TestSendRequest(t *testing.T) {
	db := setupTestDB(t)
	l := NewFriendshipLogic(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if _, err := l.SendRequest(alice.Id, alice.Id); !errors.Is(err, ErrBadRequest) {
		t.Errorf("SendRequest() to self = %v, want ErrBadRequest", err)
	}
	if _, err := l.SendRequest(alice.Id, 99999); !errors.Is(err, ErrNotFound) {
		t.Errorf("SendRequest() to missing user = %v, want ErrNotFound", err)
	}

	friendship, err := l.SendRequest(alice.Id, bob.Id)
	if err != nil {
		t.Fatalf("SendRequest() failed: %v", err)
	}
	if friendship.Status != model.FriendshipStatusPending {
		t.Errorf("Status = %s, want pending", friendship.Status)
	}

	// 被请求方收到通知
	notified := countRows(t, db, &model.NotificationModel{},
		"user_id = ? AND type = ?", bob.Id, model.NotificationTypeFriendRequest)
	if notified != 1 {
		t.Errorf("friend request notifications = %d, want 1", notified)
	}

	// 正反两个方向都算重复
	if _, err := l.SendRequest(alice.Id, bob.Id); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate SendRequest() = %v, want ErrConflict", err)
	}
	if _, err := l.SendRequest(bob.Id, alice.Id); !errors.Is(err, ErrConflict) {
		t.Errorf("reverse SendRequest() = %v, want ErrConflict", err)
	}
}

func TestRespond(t *testing.T) {
	db := setupTestDB(t)
	l := NewFriendshipLogic(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	friendship, err := l.SendRequest(alice.Id, bob.Id)
	if err != nil {
		t.Fatalf("SendRequest() failed: %v", err)
	}

	// 发起方不能处理自己的请求
	if err := l.Respond(friendship.Id, alice.Id, true); !errors.Is(err, ErrForbidden) {
		t.Errorf("Respond() by requester = %v, want ErrForbidden", err)
	}

	if err := l.Respond(friendship.Id, bob.Id, true); err != nil {
		t.Fatalf("Respond() failed: %v", err)
	}

	friends, err := l.AreFriends(alice.Id, bob.Id)
	if err != nil {
		t.Fatalf("AreFriends() failed: %v", err)
	}
	if !friends {
		t.Error("users not friends after acceptance")
	}

	// 已处理的请求不能再处理
	if err := l.Respond(friendship.Id, bob.Id, false); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Respond() on settled request = %v, want ErrInvalidState", err)
	}
}

func TestDeclineAndRemove(t *testing.T) {
	db := setupTestDB(t)
	l := NewFriendshipLogic(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	declined, err := l.SendRequest(alice.Id, bob.Id)
	if err != nil {
		t.Fatalf("SendRequest() failed: %v", err)
	}
	if err := l.Respond(declined.Id, bob.Id, false); err != nil {
		t.Fatalf("Respond(decline) failed: %v", err)
	}
	if friends, _ := l.AreFriends(alice.Id, bob.Id); friends {
		t.Error("users are friends after decline")
	}

	accepted, err := l.SendRequest(alice.Id, carol.Id)
	if err != nil {
		t.Fatalf("SendRequest() failed: %v", err)
	}
	if err := l.Respond(accepted.Id, carol.Id, true); err != nil {
		t.Fatalf("Respond(accept) failed: %v", err)
	}

	// 无关用户不能删除别人的好友关系
	if err := l.Remove(accepted.Id, bob.Id); !errors.Is(err, ErrForbidden) {
		t.Errorf("Remove() by outsider = %v, want ErrForbidden", err)
	}

	if err := l.Remove(accepted.Id, alice.Id); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if friends, _ := l.AreFriends(alice.Id, carol.Id); friends {
		t.Error("users still friends after removal")
	}
}

func TestGetFriendsListsBothDirections(t *testing.T) {
	db := setupTestDB(t)
	l := NewFriendshipLogic(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	// alice 是请求方
	f1, _ := l.SendRequest(alice.Id, bob.Id)
	if err := l.Respond(f1.Id, bob.Id, true); err != nil {
		t.Fatalf("Respond() failed: %v", err)
	}
	// alice 是被请求方
	f2, _ := l.SendRequest(carol.Id, alice.Id)
	if err := l.Respond(f2.Id, alice.Id, true); err != nil {
		t.Fatalf("Respond() failed: %v", err)
	}

	friends, err := l.GetFriends(alice.Id)
	if err != nil {
		t.Fatalf("GetFriends() failed: %v", err)
	}
	if len(friends) != 2 {
		t.Fatalf("friends count = %d, want 2", len(friends))
	}
	if friends[0].Username != "bob" || friends[1].Username != "carol" {
		t.Errorf("friends = [%s %s], want [bob carol]", friends[0].Username, friends[1].Username)
	}
}
