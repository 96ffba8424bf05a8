// @title           xIdeaFlow API
// @version         1.0
// @description     Content generation platform: credits, subscriptions, usage metering and Paddle billing.
// @contact.name    xIdeaFlow
// @contact.email   support@xideaflow.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /api/v1

package main

import "xideaflow_backend/internal/app"

func main() {
	app.Run()
}
