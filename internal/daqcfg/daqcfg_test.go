package daqcfg_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/grayscene/gray/internal/daqcfg"
)

func TestMappingRoundTrip(t *testing.T) {
	src := "detector block bx by bz\n0 0 0 0 0\n1 0 1 0 0\n2 1 0 1 0\n"
	m, err := daqcfg.LoadMapping(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadMapping: %v", err)
	}
	var buf bytes.Buffer
	if err := daqcfg.WriteMapping(&buf, m); err != nil {
		t.Fatalf("WriteMapping: %v", err)
	}
	m2, err := daqcfg.LoadMapping(&buf)
	if err != nil {
		t.Fatalf("LoadMapping round trip: %v", err)
	}
	if !reflect.DeepEqual(m, m2) {
		t.Fatalf("round trip mismatch: %+v vs %+v", m, m2)
	}
}

func TestParseDescriptions(t *testing.T) {
	src := "# comment\nsort time 1e-9\nblur energy 0.10 at 0.511\nfilter egate_low 0.400\ncoinc window 10e-9\n"
	descs, err := daqcfg.ParseDescriptions(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseDescriptions: %v", err)
	}
	if len(descs) != 4 {
		t.Fatalf("len(descs) = %d, want 4", len(descs))
	}
	if descs[0].Type != "sort" || descs[0].Subtype != "time" {
		t.Errorf("descs[0] = %+v", descs[0])
	}
	if descs[3].Type != "coinc" {
		t.Errorf("descs[3] = %+v", descs[3])
	}
}

func TestBuildModelClassifiesCoincSeparately(t *testing.T) {
	mapping, _ := daqcfg.LoadMapping(strings.NewReader("detector\n0\n1\n"))
	descs, err := daqcfg.ParseDescriptions(strings.NewReader(
		"sort time 1e-9\nfilter egate_low 0.400\ncoinc window 10e-9\n"))
	if err != nil {
		t.Fatalf("ParseDescriptions: %v", err)
	}
	f := &daqcfg.Factory{Mapping: mapping}
	model, err := daqcfg.BuildModel(descs, f, 0)
	if err != nil {
		t.Fatalf("BuildModel: %v", err)
	}
	if model == nil {
		t.Fatal("nil model")
	}
	if got := len(model.Stats().Coincidence); got != 1 {
		t.Errorf("coincidence processors = %d, want 1", got)
	}
}

func TestBuildModelCollectsEveryError(t *testing.T) {
	descs, err := daqcfg.ParseDescriptions(strings.NewReader(
		"sort time bogus\nfilter bogus 0.400\n"))
	if err != nil {
		t.Fatalf("ParseDescriptions: %v", err)
	}
	f := &daqcfg.Factory{}
	_, err = daqcfg.BuildModel(descs, f, 0)
	if err == nil {
		t.Fatal("expected an error for two malformed descriptions")
	}
	if !strings.Contains(err.Error(), "description 1") || !strings.Contains(err.Error(), "description 2") {
		t.Errorf("BuildModel error = %q, want both description 1 and 2 reported", err.Error())
	}
}

func TestBuildMergeAngerDetectsAmbiguity(t *testing.T) {
	mapping, _ := daqcfg.LoadMapping(strings.NewReader(
		"detector block bx by bz\n0 0 0 0 0\n1 0 0 0 0\n"))
	f := &daqcfg.Factory{Mapping: mapping}
	_, err := f.Build(daqcfg.Description{
		Type: "merge", Subtype: "block",
		Args: []string{"block", "100e-9", "anger", "bx", "by", "bz"},
	})
	if err == nil {
		t.Fatal("expected ambiguous anger mapping to be rejected at construction")
	}
}
