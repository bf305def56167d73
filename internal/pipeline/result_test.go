package pipeline

import (
	"errors"
	"testing"
)

func TestOkNormalizesEmptyValues(t *testing.T) {
	if Ok("  \n\t ").OK() {
		t.Error("blank string should not be a usable result")
	}
	if Ok([]byte(nil)).OK() {
		t.Error("nil bytes should not be a usable result")
	}
	if Ok([]byte{}).OK() {
		t.Error("zero-length bytes should not be a usable result")
	}
	if Ok(SocialPosts{}).OK() {
		t.Error("empty composite should not be a usable result")
	}
}

func TestOkKeepsNonEmptyValues(t *testing.T) {
	if !Ok("episode script").OK() {
		t.Error("non-empty string should be usable")
	}
	if !Ok([]byte{0x49, 0x44, 0x33}).OK() {
		t.Error("non-empty bytes should be usable")
	}
	if !Ok(SocialPosts{Twitter: "short and snappy"}).OK() {
		t.Error("partially filled composite should be usable")
	}

	result := Ok("episode script")
	if got := result.Value(); got != "episode script" {
		t.Errorf("Value() = %q, want %q", got, "episode script")
	}
}

func TestFailedCarriesError(t *testing.T) {
	cause := errors.New("model refused")
	result := Failed[string](cause)
	if result.OK() {
		t.Error("failed result should not be usable")
	}
	if !errors.Is(result.Err(), cause) {
		t.Errorf("Err() = %v, want %v", result.Err(), cause)
	}
}

func TestEmptyHasNoError(t *testing.T) {
	result := Empty[[]byte]()
	if result.OK() {
		t.Error("empty result should not be usable")
	}
	if result.Err() != nil {
		t.Errorf("Err() = %v, want nil", result.Err())
	}
}
