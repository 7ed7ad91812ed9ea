// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package performance

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/AzureAD/msal-public-client-go/apps/public"
	"github.com/montanaflynn/stats"
)

var tokenScope = []string{"the_scope"}

// fakeHandlers return a result immediately, so timings measure validation, context building and
// dispatch.
func fakeHandlers() public.Handlers {
	result := func(rc public.RequestContext) public.Handler {
		return public.HandlerFunc(func(context.Context) (public.AuthResult, error) {
			return public.AuthResult{AccessToken: "fake_access_token", Account: rc.Account, CorrelationID: rc.CorrelationID}, nil
		})
	}
	return public.Handlers{
		Interactive: func(rc public.RequestContext, _ []string, _ public.UI) public.Handler { return result(rc) },
		DeviceCode:  func(rc public.RequestContext, _ public.DeviceCodeCallback) public.Handler { return result(rc) },
		Silent:      func(rc public.RequestContext, _ bool) public.Handler { return result(rc) },
	}
}

func fakeClient() (public.Client, error) {
	return public.New("fake_client_id",
		public.WithAuthority("https://fake_authority/my_utid"),
		public.WithHandlers(fakeHandlers()),
		public.WithPlatform(public.CapabilitiesFor("linux")),
	)
}

// populateCache signs users accounts in interactively. The fake handler echoes the account back,
// so the client caches it.
func populateCache(users int, client public.Client) []public.Account {
	for user := 0; user < users; user++ {
		account := public.Account{
			HomeAccountID:     fmt.Sprintf("my_uid.%dmy_utid", user),
			Environment:       "fake_authority",
			Realm:             fmt.Sprintf("%dmy_utid", user),
			PreferredUsername: fmt.Sprintf("user%d@fake_authority", user),
		}
		_, err := client.AcquireTokenInteractive(context.Background(), tokenScope, nil, public.WithInteractiveAccount(account))
		if err != nil {
			panic(err)
		}
	}
	accounts, err := client.Accounts(context.Background())
	if err != nil {
		panic(err)
	}
	return accounts
}

func calculateStats(users int, duration []float64) {
	fmt.Printf("No of users: %d \n", users)

	mean, err := stats.Mean(duration)
	if err != nil {
		panic(err)
	}
	meanTime := mean / float64(time.Microsecond)
	fmt.Println("Mean")
	fmt.Println(meanTime)

	median, err := stats.Median(duration)
	medianTime := median / float64(time.Microsecond)
	if err != nil {
		panic(err)
	}
	fmt.Println("Median")
	fmt.Println(medianTime)

	p99, err := stats.Percentile(duration, 99)
	p99Time := p99 / float64(time.Microsecond)
	if err != nil {
		panic(err)
	}
	fmt.Println("99th Percentile")
	fmt.Println(p99Time)

	stdDev, err := stats.StandardDeviation(duration)
	stdDevTime := stdDev / float64(time.Microsecond)
	if err != nil {
		panic(err)
	}
	fmt.Println("Standard Deviation")
	fmt.Println(stdDevTime)

	min, err := stats.Min(duration)
	minTime := min / float64(time.Microsecond)
	if err != nil {
		panic(err)
	}
	fmt.Println("Min Time")
	fmt.Println(minTime)

	max, err := stats.Max(duration)
	maxTime := max / float64(time.Microsecond)
	if err != nil {
		panic(err)
	}
	fmt.Println("Max Time")
	fmt.Println(maxTime)
}

func benchMarkSilent(users int, accounts []public.Account, client public.Client) {
	var duration []float64
	for start := time.Now(); time.Since(start) < time.Minute*1; {
		s := time.Now()
		acquireSilent(accounts, client)
		e := time.Now()
		duration = append(duration, float64(e.Sub(s)))
	}
	calculateStats(users, duration)
}

func acquireSilent(accounts []public.Account, client public.Client) {
	account := accounts[rand.Intn(len(accounts))]
	_, err := client.AcquireTokenSilent(context.Background(), tokenScope, account)
	if err != nil {
		panic(err)
	}
}

func TestSilentDispatchOverhead(t *testing.T) {
	if os.Getenv("CI") != "" {
		t.Skip("Skipping testing in CI environment")
	}
	tests := []struct {
		Users int
	}{
		{1},
		{100},
		{10000},
	}

	for _, test := range tests {
		client, err := fakeClient()
		if err != nil {
			panic(err)
		}
		accounts := populateCache(test.Users, client)
		benchMarkSilent(test.Users, accounts, client)
	}
}
