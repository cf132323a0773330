/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package artifactstore

import redisapi "github.com/redis/go-redis/v9"

type redisClient interface {
	API() redisapi.UniversalClient
}
