package redis

import (
	"context"
	"testing"
	"time"
)

const retriedExpenseKey = "expense-7f3a-attempt"

func TestIdempotencyStore_ReplaysRecordedResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	recorded := `{"id":"exp-1","amount":"40.00"}`
	if err := client.Set(ctx, store.prefix+retriedExpenseKey, recorded, time.Minute).Err(); err != nil {
		t.Fatalf("seed recorded response: %v", err)
	}

	exists, resp, err := store.CheckAndSet(ctx, retriedExpenseKey, nil, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndSet: %v", err)
	}

	if !exists || string(resp) != recorded {
		t.Fatalf("want replayed response, got exists=%v resp=%s", exists, resp)
	}
}

func TestIdempotencyStore_FirstAttemptTakesLock(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, resp, err := store.CheckAndSet(ctx, retriedExpenseKey, nil, time.Minute)
	if err != nil || exists || resp != nil {
		t.Fatalf("first attempt should lock: exists=%v resp=%v err=%v", exists, resp, err)
	}

	val, err := client.Get(ctx, store.prefix+retriedExpenseKey).Result()
	if err != nil || val != "processing" {
		t.Fatalf("want placeholder lock, got val=%s err=%v", val, err)
	}
}

func TestIdempotencyStore_UpdateRecordsFinalResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	body := []byte(`{"id":"stl-1","status":"recorded"}`)
	if err := store.Update(ctx, retriedExpenseKey, body, time.Minute); err != nil {
		t.Fatalf("Update: %v", err)
	}

	val, err := client.Get(ctx, store.prefix+retriedExpenseKey).Result()
	if err != nil || val != string(body) {
		t.Fatalf("want recorded response, got val=%s err=%v", val, err)
	}
}
