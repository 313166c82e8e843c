// @title           CareerCraft API
// @version         1.0
// @description     Credit-metered AI generation service for career documents.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /api/v1

package main

import "careercraft_backend/internal/app"

func main() {
	app.Run()
}
