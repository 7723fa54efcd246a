package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/timetable/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/timetable?sslmode=disable"
	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://testuser@localhost:5432/timetable"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); err != ErrNotFound {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); err != ErrNotFound {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(constants.EnvDBConnection, "")

	if v, src := ResolveConnectionString(); v != "" || src != SourceNone {
		t.Errorf("ResolveConnectionString() = %q, %q; want empty", v, src)
	}

	if err := SetConnectionString("postgres://k@localhost/tt"); err != nil {
		t.Fatal(err)
	}
	if v, src := ResolveConnectionString(); v != "postgres://k@localhost/tt" || src != SourceKeyring {
		t.Errorf("ResolveConnectionString() = %q, %q; want keyring value", v, src)
	}

	t.Setenv(constants.EnvDBConnection, "postgres://e@localhost/tt")
	if v, src := ResolveConnectionString(); v != "postgres://e@localhost/tt" || src != SourceEnv {
		t.Errorf("ResolveConnectionString() = %q, %q; want environment value", v, src)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() = false with the mock keyring")
	}
}
