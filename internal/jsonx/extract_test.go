package jsonx

import "testing"

type testStruct struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func TestPureJSON(t *testing.T) {
	result, ok := Decode[testStruct](`{"name": "test", "value": 42}`)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if result.Name != "test" {
		t.Errorf("expected name 'test', got '%s'", result.Name)
	}
	if result.Value != 42 {
		t.Errorf("expected value 42, got %d", result.Value)
	}
}

func TestJSONWithPrefix(t *testing.T) {
	result, ok := Decode[testStruct](`Here is the result: {"name": "test", "value": 42}`)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if result.Name != "test" {
		t.Errorf("expected name 'test', got '%s'", result.Name)
	}
}

func TestJSONWithSuffix(t *testing.T) {
	result, ok := Decode[testStruct](`{"name": "test", "value": 42} That's the output.`)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if result.Value != 42 {
		t.Errorf("expected value 42, got %d", result.Value)
	}
}

func TestJSONWithBoth(t *testing.T) {
	result, ok := Decode[testStruct](`Let me think... {"name": "test", "value": 42} Done!`)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if result.Name != "test" {
		t.Errorf("expected name 'test', got '%s'", result.Name)
	}
}

func TestNoJSON(t *testing.T) {
	_, ok := Decode[testStruct]("This is just plain text without any JSON.")
	if ok {
		t.Fatal("expected decode to fail")
	}
}

func TestInvalidJSON(t *testing.T) {
	_, ok := Decode[testStruct](`{"name": "test", value: }`)
	if ok {
		t.Fatal("expected decode to fail")
	}
}

func TestFirstObjectEmpty(t *testing.T) {
	if _, ok := FirstObject(""); ok {
		t.Fatal("expected no object in empty string")
	}
}
