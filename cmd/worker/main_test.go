package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"resume-builder/internal/queue"
	"resume-builder/internal/resumes"
)

type fakeSQS struct {
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type fakeReconciler struct {
	err error
}

func (f fakeReconciler) Reconcile(ctx context.Context, userID, resumeID string) (string, error) {
	return resumes.StatusComplete, f.err
}

func savedMessage(t *testing.T, id, receipt string) sqstypes.Message {
	t.Helper()
	body, err := queue.EncodeMessage(queue.NewResumeSaved("resume-"+id, "user-1", "req-"+id, time.Now()))
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}
	return sqstypes.Message{
		MessageId:     aws.String("m" + id),
		ReceiptHandle: aws.String(receipt),
		Body:          aws.String(string(body)),
		Attributes:    map[string]string{"ApproximateReceiveCount": "1"},
	}
}

func TestWorkerDeletesMessageOnSuccess(t *testing.T) {
	client := &fakeSQS{}

	handleMessage(context.Background(), client, "queue", fakeReconciler{}, savedMessage(t, "1", "r1"))

	if len(client.deleted) != 1 || client.deleted[0] != "r1" {
		t.Fatalf("expected r1 to be deleted, got %v", client.deleted)
	}
}

func TestWorkerKeepsMessageOnTransientFailure(t *testing.T) {
	client := &fakeSQS{}

	handleMessage(context.Background(), client, "queue", fakeReconciler{err: errors.New("boom")}, savedMessage(t, "2", "r2"))

	if len(client.deleted) != 0 {
		t.Fatalf("expected no delete, got %d", len(client.deleted))
	}
}

func TestWorkerDropsEventForDeletedResume(t *testing.T) {
	client := &fakeSQS{}

	handleMessage(context.Background(), client, "queue", fakeReconciler{err: resumes.ErrNotFound}, savedMessage(t, "3", "r3"))

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
}

func TestWorkerDeletesOnInvalidJSON(t *testing.T) {
	client := &fakeSQS{}
	msg := sqstypes.Message{
		MessageId:     aws.String("m4"),
		ReceiptHandle: aws.String("r4"),
		Body:          aws.String("{bad-json"),
	}

	handleMessage(context.Background(), client, "queue", fakeReconciler{}, msg)

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
}

func TestReceiveCount(t *testing.T) {
	if got := receiveCount(sqstypes.Message{}); got != 0 {
		t.Fatalf("expected 0 without attributes, got %d", got)
	}
	if got := receiveCount(sqstypes.Message{Attributes: map[string]string{"ApproximateReceiveCount": "3"}}); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}
