// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/NVIDIA/recipe-optimizer/pkg/api"
)

func main() {
	// .env is a local development convenience only
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
