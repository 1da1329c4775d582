package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"relief-airlift-service/internal/adapters/scenariofile"
	"relief-airlift-service/internal/adapters/solver"
	"relief-airlift-service/internal/domain"
	"relief-airlift-service/internal/services"
)

// planctl loads a scenario file, solves it, and prints the mission report.
func main() {
	file := flag.String("file", "data/scenarios/scenarios.yaml", "scenario YAML file")
	name := flag.String("scenario", "sample", "scenario name within the file")
	flag.Parse()

	scenarios, err := scenariofile.LoadFile(*file)
	if err != nil {
		log.Fatal(err)
	}

	var scenario *domain.Scenario
	for _, s := range scenarios {
		if s.Name == *name {
			scenario = s
			break
		}
	}
	if scenario == nil {
		log.Fatalf("scenario %q not found in %s", *name, *file)
	}

	plan, err := services.SolveScenario(context.Background(), scenario, solver.NewSimplexSolver())
	if err != nil {
		log.Fatal(err)
	}

	writeReport(os.Stdout, scenario, plan)
}

func writeReport(w *os.File, s *domain.Scenario, plan *domain.DeliveryPlan) {
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "RELIEF AIRLIFT PLAN — %s\n", s.Name)
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Status:       %s\n", plan.Status)
	fmt.Fprintf(w, "Drones:       %d\n", len(s.Drones))
	fmt.Fprintf(w, "Depots:       %d\n", len(s.Depots))
	fmt.Fprintf(w, "Destinations: %d\n", len(s.Destinations))

	if plan.Status == domain.PlanInfeasible {
		fmt.Fprintf(w, "\nNo feasible plan: total stock %.1f, total demand %.1f under the strict policy.\n",
			s.TotalStock(), s.TotalDemand())
		return
	}

	fmt.Fprintf(w, "Deliveries:   %d\n", len(plan.Deliveries))
	fmt.Fprintf(w, "Total cost:   %.2f\n", plan.TotalCost)

	fmt.Fprintln(w, "\nDELIVERIES:")
	for i, d := range plan.Deliveries {
		fmt.Fprintf(w, " %2d. Drone %d | %s -> %s | %7.2f units | cost %8.2f\n",
			i+1, d.DroneID, depotName(s, d.DepotID), destName(s, d.DestID), d.Quantity, d.Cost)
	}

	fmt.Fprintln(w, "\nDESTINATION COVERAGE:")
	for _, ds := range s.Destinations {
		delivered := plan.DeliveredTo(ds.DestID)
		rate := 100.0
		if ds.Demand > 0 {
			rate = delivered / ds.Demand * 100
		}
		fmt.Fprintf(w, " - %-18s | demand %7.1f | delivered %7.1f | %5.1f%%\n",
			ds.Name, ds.Demand, delivered, rate)
	}

	fmt.Fprintln(w, "\nDRONE UTILIZATION:")
	for _, dr := range s.Drones {
		carried := plan.CarriedBy(dr.DroneID)
		fmt.Fprintf(w, " - %-18s | load %7.1f / %7.1f\n", droneName(dr), carried, dr.Capacity)
	}

	if len(plan.Warnings) > 0 {
		fmt.Fprintln(w, "\nWARNINGS:")
		for _, warning := range plan.Warnings {
			fmt.Fprintf(w, " - %s\n", warning)
		}
	}
}

func depotName(s *domain.Scenario, depotID int) string {
	for _, d := range s.Depots {
		if d.DepotID == depotID {
			return d.Name
		}
	}
	return fmt.Sprintf("depot %d", depotID)
}

func destName(s *domain.Scenario, destID int) string {
	for _, d := range s.Destinations {
		if d.DestID == destID {
			return d.Name
		}
	}
	return fmt.Sprintf("destination %d", destID)
}

func droneName(d domain.Drone) string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("drone %d", d.DroneID)
}
