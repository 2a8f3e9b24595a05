package services

import (
	"testing"

	"stashup/internal/models"
	"stashup/internal/testutil"
)

func TestRegister(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.Register("alice", "secretpassword")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Password == "secretpassword" {
			t.Error("password stored in plaintext")
		}
	})

	t.Run("duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Register("alice", "secretpassword")
		testutil.AssertNoError(t, err)

		_, err = svc.Register("alice", "otherpassword")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Register("", "secretpassword")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.Register("alice", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.Register("alice", "secretpassword")
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "secretpassword") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "wrongpassword") {
		t.Error("expected wrong password to fail")
	}
}

func TestGetUserByUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	created := testutil.CreateTestUserWithUsername(t, db, "bob")

	user, err := svc.GetUserByUsername("bob")
	testutil.AssertNoError(t, err)
	if user.ID != created.ID {
		t.Errorf("expected user %d, got %d", created.ID, user.ID)
	}

	_, err = svc.GetUserByUsername("nobody")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}

func TestDeleteUser(t *testing.T) {
	t.Run("cascades_owned_rows_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestSystemCategory(t, db, "Dining", models.CategoryTypeExpense)
		testutil.CreateTestCategory(t, db, user.ID, "Hobby", models.CategoryTypeExpense)
		testutil.CreateTestCategory(t, db, other.ID, "Hobby", models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Dining", 12)
		testutil.CreateTestTransaction(t, db, other.ID, models.TransactionTypeExpense, "Dining", 30)

		testutil.AssertNoError(t, svc.DeleteUser(user.ID))

		var users, categories, transactions int64
		db.Model(&models.User{}).Count(&users)
		db.Model(&models.Category{}).Count(&categories)
		db.Model(&models.Transaction{}).Count(&transactions)

		if users != 1 {
			t.Errorf("expected 1 remaining user, got %d", users)
		}
		// The system category and the other user's category survive.
		if categories != 2 {
			t.Errorf("expected 2 remaining categories, got %d", categories)
		}
		if transactions != 1 {
			t.Errorf("expected 1 remaining transaction, got %d", transactions)
		}

		var ownerless int64
		db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&ownerless)
		if ownerless != 0 {
			t.Errorf("expected no transactions for deleted user, got %d", ownerless)
		}
	})

	t.Run("missing_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.DeleteUser(9999)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
