// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"testing"

	"github.com/MKhiriev/go-ferrari-store/models"
)

const testHashKey = "test-secret-key"

func TestInitHasherPoolAndHash(t *testing.T) {
	InitHasherPool(testHashKey)

	data := []byte("test-data")
	sum1 := Hash(data)
	sum2 := Hash(data)

	if !bytes.Equal(sum1, sum2) {
		t.Fatal("hash must be deterministic for the same input")
	}

	h := hmac.New(sha256.New, []byte(testHashKey))
	h.Write(data)
	if expected := h.Sum(nil); !bytes.Equal(sum1, expected) {
		t.Fatalf("unexpected hash value\nwant: %x\ngot:  %x", expected, sum1)
	}
}

func TestHashHex_MatchesHashString(t *testing.T) {
	InitHasherPool(testHashKey)

	items := []models.CartItem{{ProductID: 1, Quantity: 2}, {ProductID: 5, Quantity: 1}}
	body, err := json.Marshal(items)
	if err != nil {
		t.Fatal(err)
	}

	if HashHex(body) != HashString(string(body), testHashKey) {
		t.Fatal("pooled and one-off hashes differ")
	}
}

func TestHash_DifferentKeysDiffer(t *testing.T) {
	if HashString("cart", "k1") == HashString("cart", "k2") {
		t.Fatal("expected different digests for different keys")
	}
}

func TestHash_Concurrent(t *testing.T) {
	InitHasherPool(testHashKey)
	expected := hex.EncodeToString(Hash([]byte("payload")))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := HashHex([]byte("payload")); got != expected {
				t.Errorf("concurrent hash mismatch: %s", got)
			}
		}()
	}
	wg.Wait()
}

func TestEqualHashes(t *testing.T) {
	a := HashString("x", testHashKey)
	if !EqualHashes(a, a) {
		t.Error("expected equal")
	}
	if EqualHashes(a, HashString("y", testHashKey)) {
		t.Error("expected not equal")
	}
}
