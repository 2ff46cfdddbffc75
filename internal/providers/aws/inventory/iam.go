package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	iamsvc "github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/deepak-negi-devops/cloudvet/internal/models"
)

// collectIAMUsers pages through all IAM users and resolves each user's MFA
// and console-login posture.
func collectIAMUsers(ctx context.Context, client iamAPIClient) ([]models.IAMUser, error) {
	paginator := iamsvc.NewListUsersPaginator(client, &iamsvc.ListUsersInput{})

	var users []models.IAMUser
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ListUsers page: %w", err)
		}
		for _, u := range page.Users {
			name := aws.ToString(u.UserName)
			users = append(users, models.IAMUser{
				UserName:        name,
				ARN:             aws.ToString(u.Arn),
				MFAEnabled:      userHasMFA(ctx, client, name),
				HasLoginProfile: userHasLoginProfile(ctx, client, name),
			})
		}
	}
	return users, nil
}

// userHasMFA reports whether the user has at least one MFA device attached.
// A failed lookup counts as no MFA so the posture is surfaced, not hidden.
func userHasMFA(ctx context.Context, client iamAPIClient, userName string) bool {
	out, err := client.ListMFADevices(ctx, &iamsvc.ListMFADevicesInput{UserName: aws.String(userName)})
	if err != nil {
		return false
	}
	return len(out.MFADevices) > 0
}

// userHasLoginProfile reports whether the user has console access. IAM
// returns NoSuchEntity for users without a login profile.
func userHasLoginProfile(ctx context.Context, client iamAPIClient, userName string) bool {
	out, err := client.GetLoginProfile(ctx, &iamsvc.GetLoginProfileInput{UserName: aws.String(userName)})
	if err != nil {
		return false
	}
	return out.LoginProfile != nil
}

// Account summary keys reported by IAM GetAccountSummary.
const (
	summaryKeyRootAccessKeys = "AccountAccessKeysPresent"
	summaryKeyRootMFA        = "AccountMFAEnabled"
)

// collectRootAccountInfo reads the root account's credential posture from the
// IAM account summary. DataAvailable is set only on a successful read so a
// failed call never masquerades as "root has no MFA".
func collectRootAccountInfo(ctx context.Context, client iamAPIClient) (models.RootAccountInfo, error) {
	out, err := client.GetAccountSummary(ctx, &iamsvc.GetAccountSummaryInput{})
	if err != nil {
		return models.RootAccountInfo{}, fmt.Errorf("GetAccountSummary: %w", err)
	}

	return models.RootAccountInfo{
		HasAccessKeys: out.SummaryMap[summaryKeyRootAccessKeys] > 0,
		MFAEnabled:    out.SummaryMap[summaryKeyRootMFA] > 0,
		DataAvailable: true,
	}, nil
}
