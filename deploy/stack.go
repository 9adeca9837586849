// Package deploy describes the AWS deployment of the blink server: a Lambda function
// running the server's lambda backend behind an API Gateway HTTP API. The HTTP API's
// $default stage serves from the root, so the page's absolute links resolve.
package deploy

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigatewayv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

const DefaultAssetPath = "dist/lambda"

type BlinkStackProps struct {
	awscdk.StackProps
	// AssetPath is the directory holding the linux/arm64 server binary, named bootstrap.
	AssetPath string
	LogLevel  string
	Logging   bool
}

func NewBlinkStack(scope constructs.Construct, id string, props *BlinkStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	assetPath := DefaultAssetPath
	environment := map[string]*string{
		"BLINK_SERVER":     jsii.String("lambda"),
		"BLINK_LOG_FORMAT": jsii.String("json"),
	}

	if props != nil {
		sprops = props.StackProps
		if props.AssetPath != "" {
			assetPath = props.AssetPath
		}
		if props.LogLevel != "" {
			environment["BLINK_LOG_LEVEL"] = jsii.String(props.LogLevel)
		}
		if props.Logging {
			environment["BLINK_LOGGING"] = jsii.String("true")
		}
	}

	stack := awscdk.NewStack(scope, &id, &sprops)

	// a single concurrent instance keeps one counter for every visitor
	server := awslambda.NewFunction(stack, jsii.String("BlinkServer"), &awslambda.FunctionProps{
		Description:                  jsii.String("weeping angel blink counter"),
		Runtime:                      awslambda.Runtime_PROVIDED_AL2(),
		Architecture:                 awslambda.Architecture_ARM_64(),
		Handler:                      jsii.String("bootstrap"),
		Code:                         awslambda.Code_FromAsset(jsii.String(assetPath), nil),
		MemorySize:                   jsii.Number(128),
		Timeout:                      awscdk.Duration_Seconds(jsii.Number(10)),
		ReservedConcurrentExecutions: jsii.Number(1),
		Environment:                  &environment,
	})

	// quick create: a $default route and stage proxying payload 2.0 events to the function
	api := awsapigatewayv2.NewCfnApi(stack, jsii.String("BlinkApi"), &awsapigatewayv2.CfnApiProps{
		Name:         jsii.String(id),
		ProtocolType: jsii.String("HTTP"),
		Target:       server.FunctionArn(),
		Description:  jsii.String("blink server"),
	})

	server.AddPermission(jsii.String("BlinkApiInvoke"), &awslambda.Permission{
		Principal: awsiam.NewServicePrincipal(jsii.String("apigateway.amazonaws.com"), nil),
		SourceArn: stack.FormatArn(&awscdk.ArnComponents{
			Service:      jsii.String("execute-api"),
			Resource:     api.Ref(),
			ResourceName: jsii.String("*/*"),
		}),
	})

	awscdk.NewCfnOutput(stack, jsii.String("BlinkUrl"), &awscdk.CfnOutputProps{
		Value:       api.AttrApiEndpoint(),
		Description: jsii.String("blink server endpoint"),
	})

	return stack
}
