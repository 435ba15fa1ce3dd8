package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	dErrors "github.com/eksiir/risk-categories-microservice/pkg/domainerrors"
)

func validCategory() *RiskCategory {
	now := time.Now()
	return &RiskCategory{
		Keywords:        []string{"protest"},
		LanguageCode:    "en",
		Name:            "Protests",
		RiskLevel:       RiskLevelMedium,
		UpdatedByUserID: primitive.NewObjectID().Hex(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestIsValidID(t *testing.T) {
	if !IsValidID(primitive.NewObjectID().Hex()) {
		t.Fatalf("expected generated ObjectID hex to be valid")
	}
	for _, id := range []string{"", "100", "zzzzzzzzzzzzzzzzzzzzzzzz", "507f1f77bcf86cd79943901"} {
		if IsValidID(id) {
			t.Fatalf("expected %q to be invalid", id)
		}
	}
}

func TestValidRiskLevel(t *testing.T) {
	for _, v := range []int{-1, 1, 2, 3, 4} {
		if !ValidRiskLevel(v) {
			t.Fatalf("expected %d to be a valid risk level", v)
		}
	}
	for _, v := range []int{0, 5, -2, 100} {
		if ValidRiskLevel(v) {
			t.Fatalf("expected %d to be rejected", v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RiskCategory)
		wantMsg string
	}{
		{"valid", func(*RiskCategory) {}, ""},
		{"whitelist marker level", func(c *RiskCategory) { c.RiskLevel = RiskLevelExcluded }, ""},
		{"missing languageCode", func(c *RiskCategory) { c.LanguageCode = "" }, "languageCode"},
		{"missing name", func(c *RiskCategory) { c.Name = "" }, "name"},
		{"risk level out of enum", func(c *RiskCategory) { c.RiskLevel = 5 }, "not a valid enum value"},
		{"risk level zero", func(c *RiskCategory) { c.RiskLevel = 0 }, "not a valid enum value"},
		{"malformed user id", func(c *RiskCategory) { c.UpdatedByUserID = "100" }, "not a valid identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCategory()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !dErrors.HasCode(err, dErrors.CodeValidation) {
				t.Fatalf("expected CodeValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected message containing %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestCreateRequestStripsUnknownFields(t *testing.T) {
	body := `{
		"languageCode": "en",
		"name": "Protests",
		"riskLevel": 2,
		"updatedByUserId": "507f1f77bcf86cd799439011",
		"smuggled": "value",
		"nested": {"also": "dropped"}
	}`
	var req CreateRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	rc := req.NewRiskCategory(time.Now())
	out, err := json.Marshal(rc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "smuggled") || strings.Contains(string(out), "dropped") {
		t.Fatalf("unknown fields leaked into entity: %s", out)
	}
}

func TestNewRiskCategoryDefaults(t *testing.T) {
	now := time.Now()
	rc := CreateRequest{
		LanguageCode:    "en",
		Name:            "Protests",
		UpdatedByUserID: primitive.NewObjectID().Hex(),
	}.NewRiskCategory(now)

	if rc.Deleted {
		t.Fatalf("expected deleted=false by default")
	}
	if rc.Keywords == nil || len(rc.Keywords) != 0 {
		t.Fatalf("expected empty keywords slice, got %#v", rc.Keywords)
	}
	if !rc.CreatedAt.Equal(now) || !rc.UpdatedAt.Equal(now) {
		t.Fatalf("expected createdAt == updatedAt == now")
	}
}

func TestUpdateRequestApplyTo(t *testing.T) {
	base := validCategory()
	name := "Riots"
	level := RiskLevelCritical
	merged := UpdateRequest{Name: &name, RiskLevel: &level}.ApplyTo(base)

	if merged.Name != "Riots" || merged.RiskLevel != RiskLevelCritical {
		t.Fatalf("expected requested fields merged, got %+v", merged)
	}
	if merged.LanguageCode != base.LanguageCode || merged.UpdatedByUserID != base.UpdatedByUserID {
		t.Fatalf("expected untouched fields preserved")
	}
	if base.Name != "Protests" {
		t.Fatalf("ApplyTo must not mutate the base document")
	}
}
