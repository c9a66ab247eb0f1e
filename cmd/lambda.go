package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve API Gateway proxy events as an AWS Lambda function",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		lambda.Start(rt.handler.Handle)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}
