package api_test

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/joestump/wisaw-links/internal/api"
	"github.com/joestump/wisaw-links/internal/identity"
)

type validateBody struct {
	Errors    map[string]string `json:"errors"`
	CanSubmit bool              `json:"canSubmit"`
}

func TestIdentity_Validate(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name          string
		body          string
		wantErrors    map[string]string
		wantCanSubmit bool
	}{
		{
			name:       "short nickname, no secret yet",
			body:       `{"nickName":"ab","secret":"","secretConfirm":"","strength":0}`,
			wantErrors: map[string]string{"nickName": identity.MsgNickNameShort},
		},
		{
			name:       "weak secret",
			body:       `{"nickName":"validname","secret":"goodsecret123","secretConfirm":"goodsecret123","strength":1}`,
			wantErrors: map[string]string{"strength": identity.MsgSecretNotSecure},
		},
		{
			name:          "valid",
			body:          `{"nickName":"validname","secret":"goodsecret123","secretConfirm":"goodsecret123","strength":4}`,
			wantErrors:    map[string]string{},
			wantCanSubmit: true,
		},
		{
			name:       "valid nickname but empty secret cannot submit",
			body:       `{"nickName":"validname","secret":"","secretConfirm":"","strength":4}`,
			wantErrors: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, "POST", "/identity/validate", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
			}
			var got validateBody
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got.Errors, tt.wantErrors) {
				t.Errorf("errors = %v, want %v", got.Errors, tt.wantErrors)
			}
			if got.CanSubmit != tt.wantCanSubmit {
				t.Errorf("canSubmit = %v, want %v", got.CanSubmit, tt.wantCanSubmit)
			}
		})
	}
}

func TestIdentity_Validate_StrengthOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "POST", "/identity/validate", `{"nickName":"validname","secret":"x","secretConfirm":"x","strength":9}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestIdentity_CreateAndVerify(t *testing.T) {
	env := newTestEnv(t)
	form := `{"nickName":"night_owl","secret":"goodsecret123","secretConfirm":"goodsecret123","strength":4}`

	rec := env.do(t, "POST", "/identity", form)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var created api.IdentityResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.NickName != "night_owl" {
		t.Errorf("created = %+v", created)
	}
	if strings.Contains(rec.Body.String(), "goodsecret123") {
		t.Error("response leaks the secret")
	}

	rec = env.do(t, "POST", "/identity", form)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate create status = %d, want %d", rec.Code, http.StatusConflict)
	}

	rec = env.do(t, "POST", "/identity/verify", `{"nickName":"night_owl","secret":"goodsecret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var verified api.IdentityResponse
	if err := json.NewDecoder(rec.Body).Decode(&verified); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if verified.ID != created.ID {
		t.Errorf("verified ID = %q, want %q", verified.ID, created.ID)
	}

	for _, body := range []string{
		`{"nickName":"night_owl","secret":"wrongsecret"}`,
		`{"nickName":"nobody_here","secret":"goodsecret123"}`,
	} {
		if rec := env.do(t, "POST", "/identity/verify", body); rec.Code != http.StatusUnauthorized {
			t.Errorf("verify %s: status = %d, want %d", body, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestIdentity_Create_Invalid(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/identity", `{"nickName":"ab","secret":"goodsecret123","secretConfirm":"nope","strength":4}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusUnprocessableEntity, rec.Body.String())
	}
	var got struct {
		Code   string            `json:"code"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{
		"nickName":      identity.MsgNickNameShort,
		"secretConfirm": identity.MsgSecretMismatch,
	}
	if got.Code != "VALIDATION_FAILED" || !reflect.DeepEqual(got.Errors, want) {
		t.Errorf("got = %+v, want errors %v", got, want)
	}

	rec = env.do(t, "POST", "/identity", `{"nickName":"validname","secret":"","secretConfirm":"","strength":4}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty secret: status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}
