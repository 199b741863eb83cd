package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

// PushService delivers mobile notifications through SNS platform endpoints.
// When SNS_FCM_ARN is not configured the service stays disabled and every
// call is a no-op, so local setups work without AWS credentials.
type PushService struct {
	store          storage.Storage
	sns            *awssns.Client
	fcmPlatformArn string
}

func NewPushService(store storage.Storage, region, fcmPlatformArn string) (*PushService, error) {
	p := &PushService{store: store, fcmPlatformArn: fcmPlatformArn}
	if fcmPlatformArn == "" {
		log.Println("push: SNS_FCM_ARN not set, push notifications disabled")
		return p, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("push: load aws config: %w", err)
	}
	p.sns = awssns.NewFromConfig(cfg)
	return p, nil
}

func (p *PushService) Enabled() bool { return p.sns != nil }

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

// RegisterDevice exchanges an FCM token for an SNS endpoint and stores it.
// Repeated registrations of the same token refresh the existing endpoint.
func (p *PushService) RegisterDevice(ctx context.Context, userID uint, platform, token string) (*models.PushEndpoint, error) {
	platform = strings.ToLower(platform)
	if platform != "android" && platform != "ios" {
		return nil, fmt.Errorf("%w: unknown platform %q", storage.ErrValidation, platform)
	}
	if !p.Enabled() {
		return nil, fmt.Errorf("%w: push notifications are not configured", storage.ErrValidation)
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.fcmPlatformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, fmt.Errorf("push: create platform endpoint: %w", err)
	}

	return p.store.UpsertPushEndpoint(ctx, &models.PushEndpoint{
		UserID:      userID,
		Platform:    platform,
		TokenHash:   tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
	})
}

// PushToUser publishes to every enabled endpoint the user has. Failures are
// logged and swallowed; notifications are never load-bearing.
func (p *PushService) PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string) {
	if !p.Enabled() {
		return
	}
	endpoints, err := p.store.GetPushEndpointsByUserID(ctx, userID)
	if err != nil || len(endpoints) == 0 {
		return
	}

	msg := map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{"title": title, "body": body},
			"data":         data,
		},
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for _, ep := range endpoints {
		if !ep.Enabled {
			continue
		}
		if _, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(ep.EndpointARN),
		}); err != nil {
			log.Printf("push: publish to user %d failed: %v", userID, err)
		}
	}
}
