// Package mocks provides shared mock implementations for testing.
//
// Two styles live here. Function-field mocks (MockJWTService,
// MockPasswordVerifier, MockUserStore) return canned values unless a Fn field
// overrides the call. Testify mocks (DestinationStore, TestifyMockUserStore)
// record expectations with github.com/stretchr/testify/mock.
//
//	jwt := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{UserID: userID}, nil
//	    },
//	}
package mocks
