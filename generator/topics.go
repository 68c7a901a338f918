package generator

var defaultGuides = []Guide{
	{
		ID:       "checkout",
		Title:    "Checkout UX",
		Triggers: []string{"checkout", "cart", "payment", "payment flow", "checkout flow", "3ds"},
		Summary:  "Tighten the payment flow and keep users informed and safe at every step.",
		Why: []string{
			"Checkout is where most revenue is lost to confusion or anxiety.",
			"Payment errors feel riskier to users than any other failure.",
			"Clear states cut support tickets about double charges.",
		},
		Steps: []string{
			"List every state: empty cart, loading totals, address lookup, payment, 3DS/auth, success, partial failure.",
			"Show totals while prices load and keep the cart and promo code across refreshes.",
			"Put inline field errors next to the field and move focus to the first one.",
			"Show a receipt screen with a retry path when only part of the order went through.",
		},
		Mistakes: []string{
			"Clearing the form after a declined card.",
			"Hiding the total until the last step.",
			"Letting users double-submit while the payment is processing.",
		},
		ExampleLanguage: "tsx",
		ExampleBody: `function PayButton({ pending, onPay }: { pending: boolean; onPay: () => void }) {
  return (
    <button disabled={pending} onClick={onPay}>
      {pending ? "Processing payment, stay on this page..." : "Pay now"}
    </button>
  );
}`,
		FollowUps: []string{
			"Paste your payment form fields and error copy and I'll rewrite them.",
			"Tell me which payment provider you use and I'll map its failure states.",
		},
	},
	{
		ID:       "search",
		Title:    "Search results UX",
		Triggers: []string{"search", "results", "filters", "no results", "search results"},
		Summary:  "Keep users oriented while searching and fail gracefully when nothing matches.",
		Why: []string{
			"Users judge the whole product by the first empty result page.",
			"Visible filters explain why results look the way they do.",
			"Good no-results states turn dead ends into refined queries.",
		},
		Steps: []string{
			"Design the empty state with example queries or popular filters.",
			"Show a loading skeleton that keeps the active filters visible.",
			"Write a no-results state that names the query and suggests fewer filters.",
			"Handle rate limits and timeouts with a retry that keeps the query.",
		},
		Mistakes: []string{
			"Clearing the query input after a search.",
			"Debouncing without any visual feedback.",
			"No way to clear all filters at once.",
		},
		ExampleLanguage: "tsx",
		ExampleBody: `function NoResults({ query }: { query: string }) {
  return <p>No results for "{query}". Try fewer filters or a broader term.</p>;
}`,
		FollowUps: []string{
			"Share your current empty and no-results UI and I'll draft better copy.",
			"Tell me how many filters you support and I'll suggest a layout.",
		},
	},
	{
		ID:       "onboarding",
		Title:    "Onboarding UX",
		Triggers: []string{"onboarding", "signup", "sign up", "sign-up", "first run", "profile setup"},
		Summary:  "Make the first run smooth with visible progress and easy recovery.",
		Why: []string{
			"Most churn happens in the first session.",
			"Progress indicators make long setups feel shorter.",
			"Letting users skip steps keeps them moving instead of leaving.",
		},
		Steps: []string{
			"Map each onboarding step and the state before, during and after it.",
			"Add a checklist with a completion percentage.",
			"Let users save a draft and finish later.",
			"Prefill sensible defaults and celebrate completion with one next action.",
		},
		Mistakes: []string{
			"Forcing every step before showing any value.",
			"No offline or slow-network state.",
			"Losing entered data when the user navigates back.",
		},
		ExampleLanguage: "tsx",
		ExampleBody: `function Progress({ done, total }: { done: number; total: number }) {
  return <p>Almost there: {done} of {total} steps done. You can finish later.</p>;
}`,
		FollowUps: []string{
			"List your onboarding steps and I'll map the states and copy for each.",
			"Tell me who your first-time users are and I'll trim the flow.",
		},
	},
	{
		ID:       "chat-ux",
		Title:    "Chat and streaming UX",
		Triggers: []string{"chat", "conversation", "assistant", "streaming", "chat ui", "retry"},
		Summary:  "Stream replies with clear progress and resilient error handling.",
		Why: []string{
			"Streaming makes long answers feel fast.",
			"Users need to know whether the assistant is thinking, streaming or stuck.",
			"A kept draft makes failures cheap to recover from.",
		},
		Steps: []string{
			"Show a typing indicator until the first chunk, then render chunks as they arrive.",
			"Offer a stop button that keeps the partial answer.",
			"Keep the composer text on errors and allow resending the last message.",
			"Surface rate limits with a backoff notice instead of a generic error.",
		},
		Mistakes: []string{
			"Auto-scrolling while the user reads earlier messages.",
			"Dropping the partial answer when the user presses stop.",
			"Showing raw error payloads to users.",
		},
		ExampleLanguage: "ts",
		ExampleBody: `let draft = "";
await chat(messages, {
  signal: controller.signal,
  onChunk: (chunk) => {
    draft += chunk;
    render(draft);
  },
});`,
		FollowUps: []string{
			"Tell me which states you show today and I'll add the missing ones with copy.",
			"Share your retry flow and I'll check it for lost input.",
		},
	},
	{
		ID:       "forms",
		Title:    "Form UX",
		Triggers: []string{"form validation", "payment form", "signup form", "fields", "validation", "input field"},
		Summary:  "Preserve the user's work and guide them to fix errors quickly.",
		Why: []string{
			"Every lost field is a reason to abandon the task.",
			"Inline errors are fixed faster than a summary at the top.",
			"Autosave makes long forms safe on flaky networks.",
		},
		Steps: []string{
			"Validate on blur and show the error next to the field.",
			"After submit, show a summary at the top that links to each error.",
			"Keep all input on retry and autosave each section.",
			"Distinguish a partial save from a full submit in the copy.",
		},
		Mistakes: []string{
			"Validating on every keystroke before the user finishes typing.",
			"Resetting the form after a server error.",
			"Error messages that do not say how to fix the problem.",
		},
		ExampleLanguage: "tsx",
		ExampleBody: `<label>
  Email
  <input aria-invalid={!!error} aria-describedby="email-error" />
  {error && <span id="email-error">{error}</span>}
</label>`,
		FollowUps: []string{
			"Share a sample field with its errors and I'll rewrite the copy.",
			"Tell me which fields fail most often and I'll suggest defaults.",
		},
	},
	{
		ID:       "react",
		Title:    "React",
		Triggers: []string{"react", "jsx", "usestate", "useeffect", "react hooks"},
		Summary:  "Build UI from small components with state kept as close as possible to where it is used.",
		Why: []string{
			"Components make UI pieces reusable and testable.",
			"One-way data flow keeps state changes predictable.",
			"The ecosystem covers routing, data fetching and testing.",
		},
		Steps: []string{
			"Sketch the component tree and decide which component owns each piece of state.",
			"Keep derived values computed during render instead of stored in state.",
			"Use effects only to sync with things outside React.",
			"Extract custom hooks once two components share the same logic.",
		},
		Mistakes: []string{
			"Copying props into state and letting them drift.",
			"Missing dependencies in useEffect.",
			"Using array indexes as keys for lists that reorder.",
		},
		ExampleLanguage: "tsx",
		ExampleBody: `function Counter() {
  const [count, setCount] = useState(0);
  return <button onClick={() => setCount((c) => c + 1)}>Clicked {count} times</button>;
}`,
		FollowUps: []string{
			"Paste a component that re-renders too often and I'll trace why.",
			"Tell me how you fetch data today and I'll suggest a pattern.",
		},
	},
	{
		ID:       "vue",
		Title:    "Vue",
		Triggers: []string{"vue", "vuex", "pinia", "composition api", "nuxt"},
		Summary:  "Use reactive state and single-file components with the Composition API for shared logic.",
		Why: []string{
			"Reactivity tracks dependencies for you.",
			"Single-file components keep template, logic and style together.",
			"The learning curve is gentle for teams coming from HTML templates.",
		},
		Steps: []string{
			"Start with single-file components and the Composition API.",
			"Keep shared state in a Pinia store only when two or more views need it.",
			"Use computed properties for derived values.",
			"Extract composables for logic reused across components.",
		},
		Mistakes: []string{
			"Destructuring reactive objects and losing reactivity.",
			"Mutating props directly.",
			"Putting everything in a global store.",
		},
		ExampleLanguage: "vue",
		ExampleBody: `<script setup>
import { ref } from "vue";
const count = ref(0);
</script>

<template>
  <button @click="count++">Clicked {{ count }} times</button>
</template>`,
		FollowUps: []string{
			"Share a component and I'll move its logic into a composable.",
			"Tell me your app size and I'll suggest a store layout.",
		},
	},
	{
		ID:       "go-concurrency",
		Title:    "Go concurrency",
		Triggers: []string{"goroutine", "golang", "go concurrency", "channels", "waitgroup", "mutex", "race condition"},
		Summary:  "Start goroutines with a clear owner, pass cancellation with context, and wait for every one you start.",
		Why: []string{
			"Goroutines are cheap, but leaked ones are not.",
			"context.Context gives every goroutine a way to stop.",
			"Channels make ownership of data explicit.",
		},
		Steps: []string{
			"Decide who starts each goroutine and who waits for it.",
			"Pass a context.Context and return when it is done.",
			"Use errgroup or a WaitGroup to wait and collect errors.",
			"Run tests with -race before merging.",
		},
		Mistakes: []string{
			"Starting goroutines without any way to stop them.",
			"Closing a channel from the receiving side.",
			"Sharing maps between goroutines without a lock.",
		},
		ExampleLanguage: "go",
		ExampleBody: `func worker(ctx context.Context, jobs <-chan Job, results chan<- Result) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job, ok := <-jobs:
			if !ok {
				return nil
			}
			results <- job.Run()
		}
	}
}`,
		FollowUps: []string{
			"Paste the code that leaks goroutines and I'll find the missing exit.",
			"Tell me the workload and I'll size the worker pool.",
		},
	},
	{
		ID:       "rest-api",
		Title:    "REST API design",
		Triggers: []string{"rest api", "endpoint", "http api", "status code", "pagination", "api design"},
		Summary:  "Model resources with predictable URLs, honest status codes and consistent error bodies.",
		Why: []string{
			"Predictable APIs need less documentation.",
			"Correct status codes let clients retry safely.",
			"Consistent errors make client handling simple.",
		},
		Steps: []string{
			"Name resources as nouns and keep URLs shallow.",
			"Return 4xx for client mistakes and 5xx only for server faults.",
			"Use one error body shape everywhere.",
			"Add cursor pagination before lists get large.",
		},
		Mistakes: []string{
			"Returning 200 with an error inside the body.",
			"Breaking clients by renaming fields without versioning.",
			"Offset pagination over data that changes often.",
		},
		ExampleLanguage: "http",
		ExampleBody: `GET /v1/orders?cursor=abc123&limit=50
HTTP/1.1 200 OK
Content-Type: application/json

{"orders": [...], "next_cursor": "def456"}`,
		FollowUps: []string{
			"Share one endpoint and its responses and I'll review them.",
			"Tell me your clients and I'll suggest a versioning approach.",
		},
	},
	{
		ID:       "docker",
		Title:    "Docker images",
		Triggers: []string{"docker", "dockerfile", "container", "docker compose", "image size"},
		Summary:  "Build small, reproducible images with multi-stage builds and a non-root user.",
		Why: []string{
			"Smaller images pull faster and expose less.",
			"Pinned versions make builds reproducible.",
			"Layer caching keeps rebuilds fast.",
		},
		Steps: []string{
			"Use a multi-stage build: compile in one stage, copy the binary into a slim runtime stage.",
			"Copy dependency manifests before source so the install layer is cached.",
			"Pin base image versions.",
			"Run as a non-root user and add a health check.",
		},
		Mistakes: []string{
			"Shipping the build toolchain in the runtime image.",
			"Using the latest tag in production.",
			"Baking secrets into image layers.",
		},
		ExampleLanguage: "dockerfile",
		ExampleBody: `FROM golang:1.24 AS build
WORKDIR /src
COPY go.mod go.sum ./
RUN go mod download
COPY . .
RUN CGO_ENABLED=0 go build -o /app .

FROM gcr.io/distroless/static
COPY --from=build /app /app
USER nonroot
ENTRYPOINT ["/app"]`,
		FollowUps: []string{
			"Paste your Dockerfile and I'll cut its size.",
			"Tell me where you deploy and I'll suggest health check settings.",
		},
	},
	{
		ID:       "sql-indexes",
		Title:    "SQL indexing",
		Triggers: []string{"sql", "index", "slow query", "query plan", "postgres", "mysql", "database"},
		Summary:  "Index for the queries you actually run, and check the plan before and after.",
		Why: []string{
			"The right index turns a full scan into a few page reads.",
			"Every index slows writes, so each one should earn its place.",
			"Query plans show what the database really does.",
		},
		Steps: []string{
			"Find the slowest frequent queries from the slow query log.",
			"Run EXPLAIN and look for full scans and sorts.",
			"Add a composite index that matches the WHERE and ORDER BY columns in order.",
			"Re-run EXPLAIN and measure, then drop indexes nothing uses.",
		},
		Mistakes: []string{
			"Indexing every column separately.",
			"Wrapping indexed columns in functions in WHERE clauses.",
			"Forgetting that column order matters in composite indexes.",
		},
		ExampleLanguage: "sql",
		ExampleBody: `CREATE INDEX idx_orders_customer_created
    ON orders (customer_id, created_at DESC);

EXPLAIN SELECT * FROM orders
 WHERE customer_id = 42
 ORDER BY created_at DESC
 LIMIT 20;`,
		FollowUps: []string{
			"Paste a slow query and its EXPLAIN output and I'll suggest an index.",
			"Tell me your write volume and I'll weigh the index cost.",
		},
	},
	{
		ID:       "testing",
		Title:    "Automated testing",
		Triggers: []string{"unit test", "testing", "tests", "flaky", "test coverage", "integration test"},
		Summary:  "Test behavior at the boundaries that matter, keep tests fast, and fix flakiness at the source.",
		Why: []string{
			"Tests let you change code without fear.",
			"Fast tests get run; slow ones get skipped.",
			"Flaky tests teach the team to ignore failures.",
		},
		Steps: []string{
			"Write tests against public behavior, not private helpers.",
			"Use table-driven cases for input variations.",
			"Replace sleeps with explicit synchronization or fake clocks.",
			"Run the suite in CI on every change.",
		},
		Mistakes: []string{
			"Asserting on implementation details.",
			"Sharing mutable state between tests.",
			"Using real time and network in unit tests.",
		},
		ExampleLanguage: "go",
		ExampleBody: `func TestSlug(t *testing.T) {
	cases := map[string]string{"Hello World": "hello-world", "": ""}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}`,
		FollowUps: []string{
			"Paste a flaky test and I'll find the race.",
			"Tell me what breaks most often and I'll suggest where to add tests.",
		},
	},
}
