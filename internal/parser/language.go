package parser

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/position"
)

// DefaultLanguageVersion is the language version assumed when none is set.
const DefaultLanguageVersion = "2.0"

// supportedVersions bounds the versions the grammar understands.
var supportedVersions = mustConstraint(">= 1.0, < 3.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(fmt.Sprintf("parser: bad constraint %q: %v", s, err))
	}
	return c
}

// Feature is a language construct introduced after C# 1.0.
type Feature int

const (
	FeatureGenerics Feature = iota
	FeatureNullableTypes
	FeatureAnonymousMethods
	FeatureIterators
	FeatureNamespaceAliasQualifier
	FeaturePartialTypes
	FeatureStaticClasses
	FeatureAccessorModifiers
	FeatureNullCoalescing
	FeatureFixedSizeBuffers
)

var features = [...]struct {
	name  string
	since *semver.Version
}{
	FeatureGenerics:                {"generics", semver.MustParse("2.0")},
	FeatureNullableTypes:           {"nullable types", semver.MustParse("2.0")},
	FeatureAnonymousMethods:        {"anonymous methods", semver.MustParse("2.0")},
	FeatureIterators:               {"iterators", semver.MustParse("2.0")},
	FeatureNamespaceAliasQualifier: {"namespace alias qualifier", semver.MustParse("2.0")},
	FeaturePartialTypes:            {"partial types", semver.MustParse("2.0")},
	FeatureStaticClasses:           {"static classes", semver.MustParse("2.0")},
	FeatureAccessorModifiers:       {"accessor modifiers", semver.MustParse("2.0")},
	FeatureNullCoalescing:          {"null coalescing operator", semver.MustParse("2.0")},
	FeatureFixedSizeBuffers:        {"fixed size buffers", semver.MustParse("2.0")},
}

func (f Feature) String() string { return features[f].name }

// LanguageVersion selects which C# features are accepted without an
// advisory.
type LanguageVersion struct {
	v *semver.Version
}

// ParseLanguageVersion parses a version such as "1.2" or "2.0".
func ParseLanguageVersion(s string) (*LanguageVersion, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, errors.InvalidOption("language version", s, err)
	}
	if !supportedVersions.Check(v) {
		return nil, errors.InvalidOption("language version", s,
			fmt.Errorf("supported versions are %s", supportedVersions))
	}
	return &LanguageVersion{v: v}, nil
}

// Supports reports whether f is part of the language version.
func (lv *LanguageVersion) Supports(f Feature) bool {
	return !lv.v.LessThan(features[f].since)
}

func (lv *LanguageVersion) String() string { return lv.v.Original() }

// requireFeature reports an advisory when f is not available in the
// selected language version.
func (p *Parser) requireFeature(f Feature, span position.Span) {
	if p.lang.Supports(f) {
		return
	}
	p.advisory(diagnostics.CodeFeatureNotAvailable, span,
		f.String(), features[f].since.Original(), p.lang.String())
}
