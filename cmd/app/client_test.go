package main

import "testing"

func TestDecodeBodyAcceptsEnvelopedObject(t *testing.T) {
	payload := []byte(`{"data": {"id": 7, "nama": "John Anderson", "lokasi": "Jakarta"}}`)
	var v wireVictim
	if err := decodeBody(payload, &v); err != nil {
		t.Fatalf("decode enveloped object: %v", err)
	}
	if v.ID != 7 || v.Name != "John Anderson" || v.Location != "Jakarta" {
		t.Fatalf("unexpected victim: %+v", v)
	}
}

func TestDecodeBodyAcceptsEnvelopedArray(t *testing.T) {
	payload := []byte(`{"data": [{"id": 1, "nama": "Sarah Mitchell"}, {"id": 2, "nama": "Robert Chen"}]}`)
	var vs []wireVictim
	if err := decodeBody(payload, &vs); err != nil {
		t.Fatalf("decode enveloped array: %v", err)
	}
	if len(vs) != 2 || vs[0].Name != "Sarah Mitchell" || vs[1].ID != 2 {
		t.Fatalf("unexpected victims: %+v", vs)
	}
}

func TestDecodeBodyAcceptsBareArray(t *testing.T) {
	payload := []byte(`[{"id": 3, "nama": "Dewi Pratama"}]`)
	var vs []wireVictim
	if err := decodeBody(payload, &vs); err != nil {
		t.Fatalf("decode bare array: %v", err)
	}
	if len(vs) != 1 || vs[0].ID != 3 || vs[0].Name != "Dewi Pratama" {
		t.Fatalf("unexpected victims: %+v", vs)
	}
}

func TestDecodeBodyAcceptsBareObject(t *testing.T) {
	payload := []byte(`{"id": 4, "nama": "Budi Santoso", "kontak": "+62 811 222 333"}`)
	var v wireVictim
	if err := decodeBody(payload, &v); err != nil {
		t.Fatalf("decode bare object: %v", err)
	}
	if v.ID != 4 || v.Name != "Budi Santoso" || v.Contact != "+62 811 222 333" {
		t.Fatalf("unexpected victim: %+v", v)
	}
}
