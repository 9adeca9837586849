package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/weegigs/wee-blink-go/deploy"
)

func main() {
	defer jsii.Close()

	app := awscdk.NewApp(nil)

	deploy.NewBlinkStack(app, "WeeBlink", &deploy.BlinkStackProps{
		StackProps: awscdk.StackProps{
			Env: env(),
		},
		AssetPath: os.Getenv("BLINK_ASSET_PATH"),
		LogLevel:  os.Getenv("BLINK_LOG_LEVEL"),
	})

	app.Synth(nil)
}

// env resolves the target account and region from the CDK CLI, leaving the stack
// environment agnostic when they are not provided.
func env() *awscdk.Environment {
	account := os.Getenv("CDK_DEFAULT_ACCOUNT")
	region := os.Getenv("CDK_DEFAULT_REGION")
	if account == "" || region == "" {
		return nil
	}

	return &awscdk.Environment{
		Account: jsii.String(account),
		Region:  jsii.String(region),
	}
}
