// Package harness runs style scenarios: YAML files listing compile calls
// and the class names and canonical trees they must produce.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	preset: presets/custom.yaml   # optional, relative to the scenario file
//	run_token: fixed-token        # optional
//	cases:
//	  - name: hover
//	    partials:
//	      - _hover: { bg: yellow.200 }
//	    expect: "hover:bg_yellow.200"
//	    declarations: 1
//	  - name: merge
//	    partials:
//	      - { fontSize: sm }
//	      - { fontSize: lg }
//	    raw: { fontSize: lg }
//
// Each case needs expect, raw, or both. raw compares key order too.
//
// # Deterministic Testing
//
// Every scenario runs against a fresh in-memory registry under a fixed run
// token, so its report (class names per case, then every registered rule in
// first-use order) is byte-identical across runs and suitable for golden
// comparison with RunWithGolden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/basics.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario, eng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, err := range result.Errors {
//	        log.Println(err)
//	    }
//	}
package harness
